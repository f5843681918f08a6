package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontend/internal/api"
	"frontend/internal/auth"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/gateway"
	"frontend/internal/notify"
)

type fakeFlowBackend struct {
	createTour   func(p models.BookingPayload) (*api.CreateTourResponse, error)
	createDirect func(p models.BookingPayload) (*api.CreateTourResponse, error)
	verify       func(p models.VerifyPaymentPayload) (*api.VerifyPaymentResponse, error)
}

func (f *fakeFlowBackend) CreateTour(_ context.Context, _ string, p models.BookingPayload) (*api.CreateTourResponse, error) {
	return f.createTour(p)
}

func (f *fakeFlowBackend) CreateTourWithoutPayment(_ context.Context, _ string, p models.BookingPayload) (*api.CreateTourResponse, error) {
	return f.createDirect(p)
}

func (f *fakeFlowBackend) VerifyPayment(_ context.Context, _ string, p models.VerifyPaymentPayload) (*api.VerifyPaymentResponse, error) {
	return f.verify(p)
}

// fakeCheckout invokes the completion callback synchronously on Pay.
type fakeCheckout struct {
	opened     int
	order      models.Order
	onComplete func(gateway.Completion)
	openErr    error
}

func (f *fakeCheckout) Open(_ context.Context, order models.Order, onComplete func(gateway.Completion)) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened++
	f.order = order
	f.onComplete = onComplete
	return nil
}

func (f *fakeCheckout) Pay(c gateway.Completion) { f.onComplete(c) }

type countingNav struct {
	mu       sync.Mutex
	pushes   []string
	replaces []string
}

func (n *countingNav) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, path)
}

func (n *countingNav) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaces = append(n.replaces, path)
}

func (n *countingNav) total() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pushes) + len(n.replaces)
}

type authStub struct {
	login      func(models.LoginInput) (*api.AuthResponse, error)
	checkAdmin func(token string) (*api.AdminResponse, error)
}

func (a authStub) Register(context.Context, models.UserInput) (*api.AuthResponse, error) {
	return nil, errors.New("unexpected")
}
func (a authStub) Login(_ context.Context, in models.LoginInput) (*api.AuthResponse, error) {
	return a.login(in)
}
func (a authStub) ForgotPassword(context.Context, models.ResetInput) (*api.MessageResponse, error) {
	return nil, errors.New("unexpected")
}
func (a authStub) VerifyAccount(context.Context, string, string) (*api.AuthResponse, error) {
	return nil, errors.New("unexpected")
}
func (a authStub) ResendOTP(context.Context, string) (*api.MessageResponse, error) {
	return nil, errors.New("unexpected")
}
func (a authStub) CheckAuth(context.Context, string) (*api.AuthResponse, error) {
	return nil, errors.New("unexpected")
}
func (a authStub) CheckAdmin(_ context.Context, token string) (*api.AdminResponse, error) {
	return a.checkAdmin(token)
}

type nullTokens struct{}

func (nullTokens) Save(string) error     { return nil }
func (nullTokens) Load() (string, error) { return "", nil }
func (nullTokens) Clear() error          { return nil }

func loggedInSession(t *testing.T) *auth.Store {
	t.Helper()
	s := auth.NewStore(authStub{
		login: func(models.LoginInput) (*api.AuthResponse, error) {
			return &api.AuthResponse{
				Token: "tok",
				User:  &models.User{ID: "u1", FullName: "Asha"},
			}, nil
		},
		checkAdmin: func(string) (*api.AdminResponse, error) {
			return nil, domain.APIError{Status: 401}
		},
	}, nullTokens{}, notify.Discard{})
	s.Login(context.Background(), models.LoginInput{Mobile: "1", Password: "p", ISOCode: "+91"})
	require.NotNil(t, s.User())
	return s
}

func TestBookRequiresLogin(t *testing.T) {
	session := auth.NewStore(authStub{}, nullTokens{}, notify.Discard{})
	flow := NewFlow(&fakeFlowBackend{}, session, &fakeCheckout{}, notify.Discard{}, &countingNav{})

	err := flow.Book(context.Background(), NewInput(goldenTriangle()))
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, StateIdle, flow.State())
}

func TestBookPayLater(t *testing.T) {
	backend := &fakeFlowBackend{
		createDirect: func(p models.BookingPayload) (*api.CreateTourResponse, error) {
			assert.Equal(t, "Golden Triangle", p.PackageName)
			assert.Equal(t, int64(6000), p.PackagePrice)
			return &api.CreateTourResponse{Message: "Booked"}, nil
		},
	}
	nav := &countingNav{}
	flow := NewFlow(backend, loggedInSession(t), &fakeCheckout{}, notify.Discard{}, nav)

	in := NewInput(goldenTriangle())
	in.SetPayOnline(false)
	require.NoError(t, flow.Book(context.Background(), in))

	assert.Equal(t, StateDone, flow.State())
	assert.Equal(t, []string{BookingsPath}, nav.pushes)
	select {
	case <-flow.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestBookOnlineFullHandshake(t *testing.T) {
	var verified models.VerifyPaymentPayload
	backend := &fakeFlowBackend{
		createTour: func(p models.BookingPayload) (*api.CreateTourResponse, error) {
			return &api.CreateTourResponse{Order: models.Order{ID: "order_1", Amount: 6000, Currency: "INR"}}, nil
		},
		verify: func(p models.VerifyPaymentPayload) (*api.VerifyPaymentResponse, error) {
			verified = p
			return &api.VerifyPaymentResponse{Message: "Payment verified", CashbackAmount: 500}, nil
		},
	}
	gw := &fakeCheckout{}
	nav := &countingNav{}
	session := loggedInSession(t)
	flow := NewFlow(backend, session, gw, notify.Discard{}, nav)
	flow.RevealDelay = 5 * time.Millisecond

	in := NewInput(goldenTriangle())
	require.NoError(t, flow.Book(context.Background(), in))
	assert.Equal(t, StateGatewayOpen, flow.State())
	assert.Equal(t, "order_1", gw.order.ID)
	assert.False(t, flow.Loading(), "loading clears once the checkout is open")

	gw.Pay(gateway.Completion{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})

	assert.Equal(t, StateRevealing, flow.State())
	assert.Equal(t, "order_1", verified.OrderID)
	assert.Equal(t, "pay_1", verified.PaymentID)
	assert.Equal(t, "Golden Triangle", verified.PackageName, "verify carries the booking snapshot")

	amount, ok := flow.Reward()
	require.True(t, ok)
	assert.Equal(t, int64(500), amount)

	// cashback lands on the session user
	require.NotNil(t, session.User())
	assert.Equal(t, int64(500), session.User().CashbackAmount)

	flow.CompleteReveal()
	select {
	case <-flow.Done():
	case <-time.After(time.Second):
		t.Fatal("flow never finished after reveal")
	}
	assert.Equal(t, StateDone, flow.State())
	assert.Equal(t, []string{BookingsPath}, nav.replaces)

	_, ok = flow.Reward()
	assert.False(t, ok, "reveal hides after navigation")

	// a second reveal completion must not navigate again
	flow.CompleteReveal()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, nav.total(), "navigation happens exactly once")
}

func TestBookOnlineCreateRejected(t *testing.T) {
	backend := &fakeFlowBackend{
		createTour: func(models.BookingPayload) (*api.CreateTourResponse, error) {
			return nil, domain.APIError{Status: 400, Message: "dates unavailable"}
		},
	}
	gw := &fakeCheckout{}
	flow := NewFlow(backend, loggedInSession(t), gw, notify.Discard{}, &countingNav{})

	err := flow.Book(context.Background(), NewInput(goldenTriangle()))
	assert.Error(t, err)
	assert.Equal(t, StateIdle, flow.State(), "rejection returns the flow to idle")
	assert.Zero(t, gw.opened, "gateway must not open on a rejected order")
	assert.False(t, flow.Loading())
}

func TestVerifyFailureDoesNotReveal(t *testing.T) {
	backend := &fakeFlowBackend{
		createTour: func(models.BookingPayload) (*api.CreateTourResponse, error) {
			return &api.CreateTourResponse{Order: models.Order{ID: "order_2"}}, nil
		},
		verify: func(models.VerifyPaymentPayload) (*api.VerifyPaymentResponse, error) {
			return nil, domain.APIError{Status: 400, Message: "signature mismatch"}
		},
	}
	gw := &fakeCheckout{}
	nav := &countingNav{}
	flow := NewFlow(backend, loggedInSession(t), gw, notify.Discard{}, nav)

	require.NoError(t, flow.Book(context.Background(), NewInput(goldenTriangle())))
	gw.Pay(gateway.Completion{OrderID: "order_2", PaymentID: "pay_2", Signature: "bad"})

	assert.Equal(t, StateIdle, flow.State())
	_, ok := flow.Reward()
	assert.False(t, ok)
	assert.Zero(t, nav.total())
}

func TestGatewayOpenFailure(t *testing.T) {
	backend := &fakeFlowBackend{
		createTour: func(models.BookingPayload) (*api.CreateTourResponse, error) {
			return &api.CreateTourResponse{Order: models.Order{ID: "order_3"}}, nil
		},
	}
	gw := &fakeCheckout{openErr: domain.GatewayError{Msg: "port busy"}}
	flow := NewFlow(backend, loggedInSession(t), gw, notify.Discard{}, &countingNav{})

	err := flow.Book(context.Background(), NewInput(goldenTriangle()))
	assert.Error(t, err)
	assert.Equal(t, StateIdle, flow.State())
}

func TestReceiptHook(t *testing.T) {
	backend := &fakeFlowBackend{
		createDirect: func(p models.BookingPayload) (*api.CreateTourResponse, error) {
			return &api.CreateTourResponse{Message: "Booked"}, nil
		},
	}
	flow := NewFlow(backend, loggedInSession(t), &fakeCheckout{}, notify.Discard{}, &countingNav{})

	var got models.BookingPayload
	var gotCashback int64
	flow.OnReceipt = func(p models.BookingPayload, cashback int64) {
		got = p
		gotCashback = cashback
	}

	in := NewInput(goldenTriangle())
	in.SetPayOnline(false)
	require.NoError(t, flow.Book(context.Background(), in))
	assert.Equal(t, "Golden Triangle", got.PackageName)
	assert.Zero(t, gotCashback)
}
