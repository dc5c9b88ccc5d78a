package product

import (
	"time"

	"github.com/gofrs/uuid"
)

// Product is the catalog's source of truth for pricing. Prices are KRW in
// minor units (whole won).
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Price       int64     `json:"price" db:"price"`
	SalePrice   *int64    `json:"sale_price,omitempty" db:"sale_price"`
	Summary     string    `json:"summary" db:"summary"`
	Description string    `json:"description" db:"description"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
