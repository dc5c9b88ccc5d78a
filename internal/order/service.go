package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/payment"
	"github.com/lieblingsring/storefront/internal/product"
)

var (
	ErrInvalidInput    = errors.New("invalid order input")
	ErrProductNotFound = errors.New("ordered product not found")
)

// Transitions an admin may force by hand. Gateway callbacks bypass this
// table; they only ever move PENDING forward via the conditional update.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusPaid:   true,
		StatusFailed: true,
		StatusCancel: true,
	},
	StatusFailed: {
		StatusPending: true,
		StatusCancel:  true,
	},
	StatusPaid: {
		StatusCancel: true,
	},
	StatusCancel: {},
}

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// ReconcileOutcome describes what a gateway callback did to an order.
type ReconcileOutcome string

const (
	OutcomePaid        ReconcileOutcome = "PAID"
	OutcomeFailed      ReconcileOutcome = "FAILED"
	OutcomeAlreadyDone ReconcileOutcome = "ALREADY_DONE"
)

// Catalog is the slice of the product repository the order service needs.
type Catalog interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error)
}

type Service interface {
	CreateOrder(ctx context.Context, form CustomerForm, lines []Line, payMethod string) (*Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, page, limit int) ([]Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, newStatus Status) error
	ApplyPaymentResult(ctx context.Context, res payment.Result) (ReconcileOutcome, error)
}

type service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

// CreateOrder validates the submitted cart and customer form, re-reads every
// price from the catalog and persists the order with item snapshots in one
// transaction. Client-supplied prices and totals are never consulted.
func (s *service) CreateOrder(ctx context.Context, form CustomerForm, lines []Line, payMethod string) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(form.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Phone) == "" || strings.TrimSpace(form.Zipcode) == "" {
		return nil, fmt.Errorf("%w: name, phone and zipcode are required", ErrInvalidInput)
	}

	productIDs := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: quantity for product %s must be greater than zero", ErrInvalidInput, line.ProductID)
		}
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product id cannot be empty", ErrInvalidInput)
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	products, err := s.catalog.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load products for order: %w", err)
	}
	productMap := make(map[uuid.UUID]product.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	var total int64
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		p, ok := productMap[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}

		price := p.Price
		if p.SalePrice != nil {
			price = *p.SalePrice
		}

		items = append(items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     price,
			Qty:       line.Qty,
		})
		total += price * int64(line.Qty)
	}

	if total <= 0 {
		return nil, fmt.Errorf("%w: order total must be greater than zero", ErrInvalidInput)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate order id: %w", err)
	}

	o := &Order{
		ID:          id,
		Email:       strings.TrimSpace(form.Email),
		Name:        strings.TrimSpace(form.Name),
		Phone:       strings.TrimSpace(form.Phone),
		Zipcode:     strings.TrimSpace(form.Zipcode),
		Addr1:       strings.TrimSpace(form.Addr1),
		Addr2:       strings.TrimSpace(form.Addr2),
		TotalAmount: total,
		Status:      StatusPending,
		PayMethod:   payMethod,
		Items:       items,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Stringer("order_id", o.ID).Int64("total_amount", o.TotalAmount).Msg("service: order created")
	return o, nil
}

func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, page, limit int) ([]Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, newStatus Status) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if current.Status == newStatus {
		return nil
	}

	if !allowedTransitions[current.Status][newStatus] {
		log.Warn().
			Stringer("order_id", id).
			Stringer("current_status", current.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Stringer("order_id", id).Stringer("old_status", current.Status).Stringer("new_status", newStatus).Msg("service: order status updated")
	return nil
}

// ApplyPaymentResult is the single reconciler both gateways feed into.
//
// Rules: an unknown order id surfaces ErrNotFound (the handler decides how to
// acknowledge it); an order that already left PENDING is a logged no-op; an
// approved result with the exact order amount becomes PAID, anything else
// becomes FAILED. The write itself is conditional on status=PENDING, so a
// duplicate callback racing past the read still cannot apply twice.
func (s *service) ApplyPaymentResult(ctx context.Context, res payment.Result) (ReconcileOutcome, error) {
	id, err := uuid.FromString(res.OrderID)
	if err != nil {
		return "", fmt.Errorf("%w: malformed order id %q", ErrNotFound, res.OrderID)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("order_id", res.OrderID).Str("provider", string(res.Provider)).Msg("service: payment callback for unknown order")
			return "", ErrNotFound
		}
		return "", fmt.Errorf("service: failed to load order for payment result: %w", err)
	}

	if o.Status != StatusPending {
		log.Info().
			Stringer("order_id", o.ID).
			Stringer("status", o.Status).
			Str("provider", string(res.Provider)).
			Str("tx_id", res.TxID).
			Msg("service: payment callback ignored, order already settled")
		return OutcomeAlreadyDone, nil
	}

	newStatus := StatusFailed
	if res.Approved && res.Amount == o.TotalAmount {
		newStatus = StatusPaid
	}
	if res.Approved && res.Amount != o.TotalAmount {
		log.Warn().
			Stringer("order_id", o.ID).
			Int64("reported_amount", res.Amount).
			Int64("order_amount", o.TotalAmount).
			Str("provider", string(res.Provider)).
			Msg("service: payment amount mismatch")
	}

	applied, err := s.repo.ApplyPaymentUpdate(ctx, o.ID, newStatus, res.TxID, res.Method)
	if err != nil {
		return "", fmt.Errorf("service: failed to persist payment result: %w", err)
	}
	if !applied {
		// Lost the race against a concurrent callback for the same order.
		log.Info().Stringer("order_id", o.ID).Str("provider", string(res.Provider)).Msg("service: payment update skipped, order no longer pending")
		return OutcomeAlreadyDone, nil
	}

	log.Info().
		Stringer("order_id", o.ID).
		Stringer("new_status", newStatus).
		Str("provider", string(res.Provider)).
		Str("tx_id", res.TxID).
		Msg("service: payment result applied")

	if newStatus == StatusPaid {
		return OutcomePaid, nil
	}
	return OutcomeFailed, nil
}
