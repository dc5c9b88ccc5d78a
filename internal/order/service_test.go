package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lieblingsring/storefront/internal/order"
	"github.com/lieblingsring/storefront/internal/payment"
	"github.com/lieblingsring/storefront/internal/product"
)

type mockOrderRepository struct {
	createFunc             func(ctx context.Context, o *order.Order) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	listFunc               func(ctx context.Context, limit, offset int) ([]order.Order, int, error)
	updateStatusFunc       func(ctx context.Context, id uuid.UUID, status order.Status) error
	applyPaymentUpdateFunc func(ctx context.Context, id uuid.UUID, status order.Status, txID, method string) (bool, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepository) List(ctx context.Context, limit, offset int) ([]order.Order, int, error) {
	return m.listFunc(ctx, limit, offset)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepository) ApplyPaymentUpdate(ctx context.Context, id uuid.UUID, status order.Status, txID, method string) (bool, error) {
	return m.applyPaymentUpdateFunc(ctx, id, status, txID, method)
}

type mockCatalog struct {
	getByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]product.Product, error)
}

func (m *mockCatalog) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
	return m.getByIDsFunc(ctx, ids)
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.FromString(s)
	require.NoError(t, err)
	return id
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_CreateOrder(t *testing.T) {
	necklaceID := "550e8400-e29b-41d4-a716-446655440000"
	earringID := "123e4567-e89b-12d3-a456-426614174000"

	validForm := order.CustomerForm{
		Email:   "kim@example.com",
		Name:    "김지은",
		Phone:   "010-1234-5678",
		Zipcode: "06236",
		Addr1:   "서울 강남구",
	}

	catalogWithBoth := func(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
		return []product.Product{
			{ID: uuid.FromStringOrNil(necklaceID), Name: "국화매듭 목걸이", Price: 99000},
			{ID: uuid.FromStringOrNil(earringID), Name: "진주 귀걸이", Price: 79000, SalePrice: int64Ptr(59000)},
		}, nil
	}

	tests := []struct {
		name         string
		form         order.CustomerForm
		lines        []order.Line
		getByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]product.Product, error)
		createFunc   func(ctx context.Context, o *order.Order) error
		wantErrIs    error
		wantTotal    int64
	}{
		{
			name:         "success_recomputes_prices",
			form:         validForm,
			lines:        []order.Line{{ProductID: uuid.FromStringOrNil(necklaceID), Qty: 2}},
			getByIDsFunc: catalogWithBoth,
			createFunc:   func(ctx context.Context, o *order.Order) error { return nil },
			wantTotal:    198000,
		},
		{
			name:         "sale_price_wins",
			form:         validForm,
			lines:        []order.Line{{ProductID: uuid.FromStringOrNil(earringID), Qty: 1}},
			getByIDsFunc: catalogWithBoth,
			createFunc:   func(ctx context.Context, o *order.Order) error { return nil },
			wantTotal:    59000,
		},
		{
			name:         "empty_cart",
			form:         validForm,
			lines:        nil,
			getByIDsFunc: catalogWithBoth,
			wantErrIs:    order.ErrInvalidInput,
		},
		{
			name:         "missing_email",
			form:         order.CustomerForm{Name: "김지은", Phone: "010-1234-5678", Zipcode: "06236"},
			lines:        []order.Line{{ProductID: uuid.FromStringOrNil(necklaceID), Qty: 1}},
			getByIDsFunc: catalogWithBoth,
			wantErrIs:    order.ErrInvalidInput,
		},
		{
			name:         "zero_quantity",
			form:         validForm,
			lines:        []order.Line{{ProductID: uuid.FromStringOrNil(necklaceID), Qty: 0}},
			getByIDsFunc: catalogWithBoth,
			wantErrIs:    order.ErrInvalidInput,
		},
		{
			name:  "unknown_product",
			form:  validForm,
			lines: []order.Line{{ProductID: uuid.FromStringOrNil("9f9c24f4-5fd1-4b2f-9a71-000000000000"), Qty: 1}},
			getByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
				return nil, nil
			},
			wantErrIs: order.ErrProductNotFound,
		},
		{
			name:         "repository_failure",
			form:         validForm,
			lines:        []order.Line{{ProductID: uuid.FromStringOrNil(necklaceID), Qty: 1}},
			getByIDsFunc: catalogWithBoth,
			createFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("connection refused")
			},
			wantErrIs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{createFunc: tt.createFunc}
			catalog := &mockCatalog{getByIDsFunc: tt.getByIDsFunc}
			svc := order.NewService(repo, catalog)

			o, err := svc.CreateOrder(context.Background(), tt.form, tt.lines, "card")

			if tt.name == "repository_failure" {
				require.Error(t, err)
				return
			}
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, o.TotalAmount)
			assert.Equal(t, order.StatusPending, o.Status)
			assert.NotEqual(t, uuid.Nil, o.ID)
		})
	}
}

func TestService_CreateOrder_SnapshotsItems(t *testing.T) {
	pid := mustUUID(t, "550e8400-e29b-41d4-a716-446655440000")

	var created *order.Order
	repo := &mockOrderRepository{
		createFunc: func(ctx context.Context, o *order.Order) error {
			created = o
			return nil
		},
	}
	catalog := &mockCatalog{
		getByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]product.Product, error) {
			return []product.Product{{ID: pid, Name: "국화매듭 목걸이", Price: 99000}}, nil
		},
	}
	svc := order.NewService(repo, catalog)

	_, err := svc.CreateOrder(context.Background(), order.CustomerForm{
		Email: "kim@example.com", Name: "김지은", Phone: "010-1234-5678", Zipcode: "06236",
	}, []order.Line{{ProductID: pid, Qty: 3}}, "card")

	require.NoError(t, err)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "국화매듭 목걸이", created.Items[0].Name)
	assert.Equal(t, int64(99000), created.Items[0].Price)
	assert.Equal(t, 3, created.Items[0].Qty)
}

func TestService_UpdateOrderStatus(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name          string
		currentStatus order.Status
		newStatus     order.Status
		wantErrIs     error
	}{
		{name: "pending_to_paid", currentStatus: order.StatusPending, newStatus: order.StatusPaid},
		{name: "pending_to_cancel", currentStatus: order.StatusPending, newStatus: order.StatusCancel},
		{name: "failed_to_pending_retry", currentStatus: order.StatusFailed, newStatus: order.StatusPending},
		{name: "paid_to_cancel_refund", currentStatus: order.StatusPaid, newStatus: order.StatusCancel},
		{name: "paid_to_pending_forbidden", currentStatus: order.StatusPaid, newStatus: order.StatusPending, wantErrIs: order.ErrInvalidStatusTransition},
		{name: "cancel_is_terminal", currentStatus: order.StatusCancel, newStatus: order.StatusPending, wantErrIs: order.ErrInvalidStatusTransition},
		{name: "same_status_noop", currentStatus: order.StatusPaid, newStatus: order.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := mustUUID(t, orderID)
			repo := &mockOrderRepository{
				getByIDFunc: func(ctx context.Context, gotID uuid.UUID) (*order.Order, error) {
					assert.Equal(t, id, gotID)
					return &order.Order{ID: id, Status: tt.currentStatus}, nil
				},
				updateStatusFunc: func(ctx context.Context, id uuid.UUID, status order.Status) error {
					assert.Equal(t, tt.newStatus, status)
					return nil
				},
			}
			svc := order.NewService(repo, &mockCatalog{})

			err := svc.UpdateOrderStatus(context.Background(), id, tt.newStatus)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_UpdateOrderStatus_NotFound(t *testing.T) {
	repo := &mockOrderRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	svc := order.NewService(repo, &mockCatalog{})

	err := svc.UpdateOrderStatus(context.Background(), uuid.Must(uuid.NewV4()), order.StatusPaid)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestService_ApplyPaymentResult(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name          string
		result        payment.Result
		currentStatus order.Status
		applied       bool
		wantOutcome   order.ReconcileOutcome
		wantStatus    order.Status
		wantErrIs     error
	}{
		{
			name:          "approved_exact_amount_paid",
			result:        payment.Result{Provider: payment.ProviderPayApp, OrderID: orderID, Amount: 99000, Approved: true, TxID: "tid-1"},
			currentStatus: order.StatusPending,
			applied:       true,
			wantOutcome:   order.OutcomePaid,
			wantStatus:    order.StatusPaid,
		},
		{
			name:          "approved_amount_mismatch_failed",
			result:        payment.Result{Provider: payment.ProviderPayApp, OrderID: orderID, Amount: 1000, Approved: true, TxID: "tid-2"},
			currentStatus: order.StatusPending,
			applied:       true,
			wantOutcome:   order.OutcomeFailed,
			wantStatus:    order.StatusFailed,
		},
		{
			name:          "declined_failed",
			result:        payment.Result{Provider: payment.ProviderToss, OrderID: orderID, Amount: 99000, Approved: false},
			currentStatus: order.StatusPending,
			applied:       true,
			wantOutcome:   order.OutcomeFailed,
			wantStatus:    order.StatusFailed,
		},
		{
			name:          "already_paid_noop",
			result:        payment.Result{Provider: payment.ProviderPayApp, OrderID: orderID, Amount: 99000, Approved: true},
			currentStatus: order.StatusPaid,
			wantOutcome:   order.OutcomeAlreadyDone,
		},
		{
			name:          "lost_race_reports_already_done",
			result:        payment.Result{Provider: payment.ProviderToss, OrderID: orderID, Amount: 99000, Approved: true},
			currentStatus: order.StatusPending,
			applied:       false,
			wantOutcome:   order.OutcomeAlreadyDone,
		},
		{
			name:      "malformed_order_id",
			result:    payment.Result{Provider: payment.ProviderPayApp, OrderID: "not-a-uuid", Amount: 99000, Approved: true},
			wantErrIs: order.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updateCalled bool
			repo := &mockOrderRepository{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
					return &order.Order{ID: id, Status: tt.currentStatus, TotalAmount: 99000}, nil
				},
				applyPaymentUpdateFunc: func(ctx context.Context, id uuid.UUID, status order.Status, txID, method string) (bool, error) {
					updateCalled = true
					assert.Equal(t, tt.wantStatus, status)
					return tt.applied, nil
				},
			}
			svc := order.NewService(repo, &mockCatalog{})

			outcome, err := svc.ApplyPaymentResult(context.Background(), tt.result)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			if tt.currentStatus != order.StatusPending {
				assert.False(t, updateCalled, "settled orders must never be written again")
			}
		})
	}
}

func TestService_ApplyPaymentResult_UnknownOrder(t *testing.T) {
	repo := &mockOrderRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	svc := order.NewService(repo, &mockCatalog{})

	_, err := svc.ApplyPaymentResult(context.Background(), payment.Result{
		Provider: payment.ProviderPayApp,
		OrderID:  "550e8400-e29b-41d4-a716-446655440000",
		Amount:   99000,
		Approved: true,
	})
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestService_ListOrders_ClampsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockOrderRepository{
		listFunc: func(ctx context.Context, limit, offset int) ([]order.Order, int, error) {
			gotLimit, gotOffset = limit, offset
			return []order.Order{}, 0, nil
		},
	}
	svc := order.NewService(repo, &mockCatalog{})

	_, _, err := svc.ListOrders(context.Background(), -5, 100000)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
}
