package content

import (
	"time"

	"github.com/gofrs/uuid"
)

type Notice struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type LookbookEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Caption   string    `json:"caption" db:"caption"`
	Image     string    `json:"image" db:"image"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Inquiry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Contact   string    `json:"contact" db:"contact"`
	Product   string    `json:"product" db:"product"`
	SKU       string    `json:"sku" db:"sku"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
