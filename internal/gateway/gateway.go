// Package gateway abstracts the third-party payment processor. The booking
// flow opens a checkout session for a backend-issued order and hears back
// only through the completion callback.
package gateway

import (
	"context"

	"frontend/internal/domain/models"
)

// Completion is what the gateway reports after the user finishes paying.
type Completion struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Checkout opens a payment session for an order. Open returns once the
// session is available to the user; onComplete fires asynchronously, at
// most once, when the gateway reports payment completion.
type Checkout interface {
	Open(ctx context.Context, order models.Order, onComplete func(Completion)) error
}
