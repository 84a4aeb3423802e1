package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	publishTimeout = 5 * time.Second
	queueSize      = 1024
)

const (
	ItemAdded       = "cart_item_added"
	QuantityUpdated = "cart_quantity_updated"
	ItemRemoved     = "cart_item_removed"
	CartCleared     = "cart_cleared"
)

var (
	ErrQueueFull = errors.New("kafka: event queue is full")
	ErrClosed    = errors.New("kafka: producer is closed")
)

// CartEvent is published after every successful cart mutation.
type CartEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  uint      `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher hands events off without waiting for the broker.
type Publisher interface {
	PublishCartEvent(ctx context.Context, e CartEvent) error
}

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues events in memory and writes them to Kafka from a single
// goroutine, so a slow or hung broker never delays the caller.
type Producer struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger

	queue chan kafka.Message
	done  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	// closeGrace bounds how long Close waits for queued events.
	closeGrace time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           publishTimeout,
		ReadTimeout:            publishTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewProducerWithWriter(writer, topic, logger)
}

func NewProducerWithWriter(w MessageWriter, topic string, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Producer{
		writer:     w,
		topic:      topic,
		logger:     logger,
		queue:      make(chan kafka.Message, queueSize),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		closeGrace: publishTimeout,
	}
	go p.run()
	return p
}

// PublishCartEvent queues the event keyed by user id, so one user's events
// keep their order within a partition. Write failures are logged, not
// returned.
func (p *Producer) PublishCartEvent(_ context.Context, e CartEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- kafka.Message{Key: []byte(e.UserID), Value: data}:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s for %s", ErrQueueFull, e.Type, p.topic)
	}
}

func (p *Producer) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(p.ctx, publishTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.logger.Warn("cart_event_write_failed", "topic", p.topic, "key", string(msg.Key), "error", err)
		}
	}
}

// Close stops accepting events, flushes what is queued within closeGrace,
// abandons the rest and closes the writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	timer := time.NewTimer(p.closeGrace)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Warn("cart_event_flush_timeout", "topic", p.topic, "pending", len(p.queue))
		p.cancel()
		<-p.done
	}
	p.cancel()

	return p.writer.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishCartEvent(context.Context, CartEvent) error { return nil }
