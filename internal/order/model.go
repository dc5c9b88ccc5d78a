package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
	StatusCancel  Status = "CANCEL"
)

func (s Status) String() string {
	return string(s)
}

// Item is a snapshot of a product at order time. Name and price are copied
// deliberately so later catalog edits never rewrite order history.
type Item struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     int64     `json:"price" db:"price"`
	Qty       int       `json:"qty" db:"qty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Phone       string    `json:"phone" db:"phone"`
	Zipcode     string    `json:"zipcode" db:"zipcode"`
	Addr1       string    `json:"addr1" db:"addr1"`
	Addr2       string    `json:"addr2" db:"addr2"`
	TotalAmount int64     `json:"total_amount" db:"total_amount"`
	Status      Status    `json:"status" db:"status"`
	PayMethod   string    `json:"pay_method" db:"pay_method"`
	PayTxID     *string   `json:"pay_tx_id,omitempty" db:"pay_tx_id"`
	Items       []Item    `json:"items" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerForm is the checkout contact/shipping form.
type CustomerForm struct {
	Email   string
	Name    string
	Phone   string
	Zipcode string
	Addr1   string
	Addr2   string
}

// Line is one cart row as submitted at checkout. Only the product id and
// quantity are trusted; prices always come from the catalog.
type Line struct {
	ProductID uuid.UUID
	Qty       int
}
