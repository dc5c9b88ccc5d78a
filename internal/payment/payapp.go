package payment

import (
	"fmt"
	"net/url"
	"strconv"
)

// PayApp delivers its feedback as an x-www-form-urlencoded POST. var1 carries
// the order id we planted when starting the payment; result "OK" means the
// charge went through.
const payAppResultOK = "OK"

// ParsePayAppFeedback converts a raw feedback body into a Result.
func ParsePayAppFeedback(body string) (Result, error) {
	params, err := url.ParseQuery(body)
	if err != nil {
		return Result{}, fmt.Errorf("payapp: failed to parse feedback body: %w", err)
	}

	orderID := params.Get("var1")
	if orderID == "" {
		return Result{}, fmt.Errorf("payapp: feedback missing order id (var1)")
	}

	price, err := strconv.ParseInt(params.Get("price"), 10, 64)
	if err != nil {
		return Result{}, fmt.Errorf("payapp: invalid price %q: %w", params.Get("price"), err)
	}

	return Result{
		Provider: ProviderPayApp,
		OrderID:  orderID,
		Amount:   price,
		Approved: params.Get("result") == payAppResultOK,
		TxID:     params.Get("tid"),
		Method:   params.Get("paymethod"),
	}, nil
}
