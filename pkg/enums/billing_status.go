package enums

// BillingStatus is the charge status as reported by the payment provider.
// Values outside the known set are passed through verbatim so the literal
// provider status can be surfaced to the user.
type BillingStatus string

const (
	BillingStatusPending   BillingStatus = "PENDING"
	BillingStatusPaid      BillingStatus = "PAID"
	BillingStatusConfirmed BillingStatus = "CONFIRMED"
	BillingStatusExpired   BillingStatus = "EXPIRED"
	BillingStatusCancelled BillingStatus = "CANCELLED"
	BillingStatusNotFound  BillingStatus = "NOT_FOUND"
)

// IsSettled reports whether the status counts as a completed payment.
func (b BillingStatus) IsSettled() bool {
	return b == BillingStatusPaid || b == BillingStatusConfirmed
}
