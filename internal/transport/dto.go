package transport

import "github.com/shopspring/decimal"

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CreateProductRequest struct {
	Name            string          `json:"name"             validate:"required,max=256"`
	Slug            string          `json:"slug"             validate:"max=50"`
	Price           decimal.Decimal `json:"price"`
	MeasurementUnit string          `json:"measurement_unit" validate:"required,max=256"`
	IsAvailable     bool            `json:"is_available"`
	Images          []string        `json:"images"           validate:"dive,url"`
}

type RegisterRequest struct {
	Username  string `json:"username"   validate:"required,max=150,username"`
	Email     string `json:"email"      validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name"  validate:"max=150"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}
