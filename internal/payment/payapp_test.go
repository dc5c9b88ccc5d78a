package payment_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lieblingsring/storefront/internal/payment"
)

func TestParsePayAppFeedback(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    payment.Result
	}{
		{
			name: "approved",
			body: url.Values{
				"var1":      {"550e8400-e29b-41d4-a716-446655440000"},
				"result":    {"OK"},
				"price":     {"99000"},
				"tid":       {"payapp-tx-123"},
				"paymethod": {"card"},
			}.Encode(),
			want: payment.Result{
				Provider: payment.ProviderPayApp,
				OrderID:  "550e8400-e29b-41d4-a716-446655440000",
				Amount:   99000,
				Approved: true,
				TxID:     "payapp-tx-123",
				Method:   "card",
			},
		},
		{
			name: "declined",
			body: "var1=550e8400-e29b-41d4-a716-446655440000&result=FAIL&price=99000&tid=payapp-tx-124",
			want: payment.Result{
				Provider: payment.ProviderPayApp,
				OrderID:  "550e8400-e29b-41d4-a716-446655440000",
				Amount:   99000,
				Approved: false,
				TxID:     "payapp-tx-124",
			},
		},
		{
			name:    "missing_order_id",
			body:    "result=OK&price=99000",
			wantErr: true,
		},
		{
			name:    "missing_price",
			body:    "var1=550e8400-e29b-41d4-a716-446655440000&result=OK",
			wantErr: true,
		},
		{
			name:    "non_numeric_price",
			body:    "var1=550e8400-e29b-41d4-a716-446655440000&result=OK&price=ninety",
			wantErr: true,
		},
		{
			name:    "garbage_body",
			body:    "%zz%%%",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payment.ParsePayAppFeedback(tt.body)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
