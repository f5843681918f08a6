package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"frontend/internal/api"
	"frontend/internal/auth"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/gateway"
	"frontend/internal/notify"
	"frontend/internal/utils"
)

// ErrLoginRequired means no user is in the session; the caller should route
// to login instead of booking.
var ErrLoginRequired = errors.New("login required")

// BookingsPath is where the flow navigates after a finished booking.
const BookingsPath = "/bookings"

// State of one booking attempt.
type State string

const (
	StateIdle        State = "idle"
	StateSubmitting  State = "submitting"
	StateGatewayOpen State = "gateway_open"
	StateVerifying   State = "verifying"
	StateRevealing   State = "revealing"
	StateDone        State = "done"
)

// Navigator is the routing surface the flow drives.
type Navigator interface {
	Push(path string)
	Replace(path string)
}

// Backend is the slice of the REST client the flow needs.
type Backend interface {
	CreateTour(ctx context.Context, token string, p models.BookingPayload) (*api.CreateTourResponse, error)
	CreateTourWithoutPayment(ctx context.Context, token string, p models.BookingPayload) (*api.CreateTourResponse, error)
	VerifyPayment(ctx context.Context, token string, p models.VerifyPaymentPayload) (*api.VerifyPaymentResponse, error)
}

// Flow executes one booking attempt end to end:
//
//	Idle → Submitting → GatewayOpen → Verifying → Revealing → Done
//	Idle → Submitting → DirectBookingPending(Done)
//
// with any failure along the way notifying the user and returning to Idle.
type Flow struct {
	backend Backend
	session *auth.Store
	gateway gateway.Checkout
	notify  notify.Notifier
	nav     Navigator

	// RevealDelay is how long the reveal stays up after the user finishes
	// it before navigating on.
	RevealDelay time.Duration

	// OnReceipt, when set, receives the booked payload and cashback amount
	// after a successful booking. Best-effort, runs outside the state machine.
	OnReceipt func(p models.BookingPayload, cashback int64)

	mu        sync.Mutex
	state     State
	loading   bool
	reward    int64
	hasReward bool
	navigated bool
	done      chan struct{}
}

func NewFlow(backend Backend, session *auth.Store, gw gateway.Checkout, n notify.Notifier, nav Navigator) *Flow {
	if n == nil {
		n = notify.Discard{}
	}
	return &Flow{
		backend:     backend,
		session:     session,
		gateway:     gw,
		notify:      n,
		nav:         nav,
		RevealDelay: 3 * time.Second,
		state:       StateIdle,
		done:        make(chan struct{}),
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Reward returns the verified cashback amount once the reveal is up.
func (f *Flow) Reward() (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reward, f.hasReward
}

// Done closes when the attempt reaches StateDone.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// Book submits the booking. With pay-online set it creates the order and
// opens the gateway checkout, returning once the checkout is up; the rest
// of the flow continues from the gateway callback. Without it the booking
// completes directly.
func (f *Flow) Book(ctx context.Context, in *Input) error {
	if f.session.User() == nil {
		return ErrLoginRequired
	}

	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	f.state = StateSubmitting
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	token := f.session.Token()
	payload := in.Payload()

	if !in.PayOnline() {
		resp, err := f.backend.CreateTourWithoutPayment(ctx, token, payload)
		if err != nil {
			f.fail("book_direct", err)
			return err
		}
		msg := resp.Message
		if msg == "" {
			msg = "Booking created successfully without payment"
		}
		f.notify.Success(msg)
		f.receipt(payload, 0)
		f.finish()
		f.nav.Push(BookingsPath)
		return nil
	}

	resp, err := f.backend.CreateTour(ctx, token, payload)
	if err != nil {
		f.fail("book_online", err)
		return err
	}

	f.mu.Lock()
	f.state = StateGatewayOpen
	f.mu.Unlock()

	err = f.gateway.Open(ctx, resp.Order, func(c gateway.Completion) {
		f.verify(ctx, token, payload, c)
	})
	if err != nil {
		f.fail("book_online", err)
		return err
	}
	return nil
}

// verify runs from the gateway completion callback.
func (f *Flow) verify(ctx context.Context, token string, payload models.BookingPayload, c gateway.Completion) {
	f.mu.Lock()
	f.state = StateVerifying
	f.mu.Unlock()

	resp, err := f.backend.VerifyPayment(ctx, token, models.VerifyPaymentPayload{
		OrderID:        c.OrderID,
		PaymentID:      c.PaymentID,
		Signature:      c.Signature,
		BookingPayload: payload,
	})
	if err != nil {
		f.fail("verify_payment", err)
		return
	}

	msg := resp.Message
	if msg == "" {
		msg = "Payment verified"
	}
	f.notify.Success(msg)
	f.session.AddCashback(resp.CashbackAmount)
	f.receipt(payload, resp.CashbackAmount)

	f.mu.Lock()
	f.reward = resp.CashbackAmount
	f.hasReward = true
	f.state = StateRevealing
	f.mu.Unlock()
}

// CompleteReveal is called after the user finishes the reward reveal; a
// fixed delay later the reveal hides and the flow navigates to the bookings
// view, exactly once.
func (f *Flow) CompleteReveal() {
	f.mu.Lock()
	if f.state != StateRevealing {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	time.AfterFunc(f.RevealDelay, func() {
		f.mu.Lock()
		if f.navigated {
			f.mu.Unlock()
			return
		}
		f.navigated = true
		f.hasReward = false
		f.mu.Unlock()
		f.finish()
		f.nav.Replace(BookingsPath)
	})
}

func (f *Flow) fail(action string, err error) {
	utils.LogEvent("", "booking", action, err.Error())
	f.notify.Error(domain.Message(err))
	f.mu.Lock()
	f.state = StateIdle
	f.mu.Unlock()
}

func (f *Flow) finish() {
	f.mu.Lock()
	if f.state == StateDone {
		f.mu.Unlock()
		return
	}
	f.state = StateDone
	f.mu.Unlock()
	close(f.done)
}

func (f *Flow) receipt(p models.BookingPayload, cashback int64) {
	if f.OnReceipt == nil {
		return
	}
	f.OnReceipt(p, cashback)
}
