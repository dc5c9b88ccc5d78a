package payment

// Provider identifies which gateway produced a Result.
type Provider string

const (
	ProviderPayApp Provider = "PAYAPP"
	ProviderToss   Provider = "TOSS"
)

// Result is the provider-neutral outcome of a payment attempt. Gateway
// adapters only parse requests and shape responses; every Result funnels
// through the same reconciler in the order service.
type Result struct {
	Provider Provider
	OrderID  string
	Amount   int64
	Approved bool
	TxID     string
	Method   string
}
