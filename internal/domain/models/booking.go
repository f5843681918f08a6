package models

// Package is a predefined tour offering as supplied by the catalog.
// Days is the minimum duration; PricePerDay is per person.
type Package struct {
	Name          string
	Days          int
	PricePerDay   int64
	PlaceList     []string
	AdventureList []string
}

// BookingPayload is the create-tour request body. JSON names match the
// backend exactly; PackagePrice carries the derived total.
type BookingPayload struct {
	PackageName   string   `json:"PackageName"`
	PackageDays   int      `json:"PackageDays"`
	PackagePrice  int64    `json:"PackagePrice"`
	People        int      `json:"people"`
	StartDate     string   `json:"startDate"`
	PlaceList     []string `json:"PlaceList,omitempty"`
	AdventureList []string `json:"AdventureList,omitempty"`
	Hotel         string   `json:"hotel"`
}

// Order is the gateway order reference returned by create-tour.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentPayload posts the gateway completion plus a snapshot of the
// booking input to verify-payment.
type VerifyPaymentPayload struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	BookingPayload
}
