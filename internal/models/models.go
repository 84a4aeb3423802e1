package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"             json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"    json:"username"`
	Email        string    `gorm:"size:254;not null"                json:"email"`
	FirstName    string    `gorm:"size:150;not null"                json:"first_name"`
	LastName     string    `gorm:"size:150;not null"                json:"last_name"`
	PasswordHash string    `gorm:"not null"                         json:"-"`
	Role         string    `gorm:"size:16;not null;default:user"    json:"role"`
	CreatedAt    time.Time `                                        json:"created_at"`
}

type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"                 json:"id"`
	Name            string          `gorm:"size:256;not null;index"              json:"name"`
	Slug            string          `gorm:"size:50"                              json:"slug"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"          json:"price"`
	MeasurementUnit string          `gorm:"size:256;not null"                    json:"measurement_unit"`
	IsAvailable     bool            `gorm:"not null;default:false"               json:"is_available"`
	CreatedAt       time.Time       `                                            json:"created_at"`
	Images          []Image         `gorm:"constraint:OnDelete:CASCADE"          json:"images"`
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"   json:"product_id"`
	URL       string    `gorm:"not null"                   json:"url"`
}

// CartLine is one product in one user's cart. Price is never copied here:
// the subtotal always follows the current product price.
type CartLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                                 json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"     json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_product;not null"     json:"product_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                           json:"quantity"`
	CreatedAt time.Time `                                                            json:"created_at"`
	UpdatedAt time.Time `                                                            json:"updated_at"`

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}
