// Package auth holds the session store: the single source of truth for who
// is logged in, whether they are an admin, and the bearer token itself.
// Exactly one Store exists per process; it is constructed in main and passed
// to whoever needs it.
package auth

import (
	"context"
	"sync"

	"frontend/internal/api"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/notify"
	"frontend/internal/utils"
)

const errFillAll = "Please fill all fields"

// Backend is the slice of the REST client the store needs.
type Backend interface {
	Register(ctx context.Context, in models.UserInput) (*api.AuthResponse, error)
	Login(ctx context.Context, in models.LoginInput) (*api.AuthResponse, error)
	ForgotPassword(ctx context.Context, in models.ResetInput) (*api.MessageResponse, error)
	VerifyAccount(ctx context.Context, otp, mobile string) (*api.AuthResponse, error)
	ResendOTP(ctx context.Context, mobile string) (*api.MessageResponse, error)
	CheckAuth(ctx context.Context, token string) (*api.AuthResponse, error)
	CheckAdmin(ctx context.Context, token string) (*api.AdminResponse, error)
}

// TokenStore is the durable token storage.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

type Store struct {
	backend Backend
	tokens  TokenStore
	notify  notify.Notifier

	mu            sync.Mutex
	token         string
	user          *models.User
	authenticated bool
	admin         bool
	checking      bool
	err           string
}

func NewStore(backend Backend, tokens TokenStore, n notify.Notifier) *Store {
	if n == nil {
		n = notify.Discard{}
	}
	return &Store{
		backend: backend,
		tokens:  tokens,
		notify:  n,
		// checking starts true until the first CheckAuth settles
		checking: true,
	}
}

// Signup registers a new account. On success the session is authenticated,
// the token persisted, and a best-effort admin check runs. Returns whether
// the primary call succeeded; never returns an error to its caller.
func (s *Store) Signup(ctx context.Context, in models.UserInput) bool {
	s.setErr("")
	if in.FullName == "" || in.Mobile == "" || in.Password == "" ||
		in.ISOCode == "" || in.Answer == "" || in.Question == "" {
		s.reject("signup", domain.ValidationError{Field: "form", Msg: errFillAll})
		return false
	}
	in.Mobile = in.ISOCode + in.Mobile

	resp, err := s.backend.Register(ctx, in)
	if err != nil {
		s.reject("signup", err)
		return false
	}

	s.mu.Lock()
	s.token = resp.Token
	s.mu.Unlock()

	s.enrichAdmin(ctx, resp.Token)

	s.mu.Lock()
	s.authenticated = true
	s.user = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.tokens.Save(resp.Token); err != nil {
		s.reject("signup", err)
		return false
	}
	s.peekExpiry(resp.Token)
	s.notify.Success(resp.Message)
	return true
}

// Login authenticates an existing account, with the same persist-and-enrich
// sequence as Signup. Callers read store state afterwards.
func (s *Store) Login(ctx context.Context, in models.LoginInput) {
	s.setErr("")
	if in.Mobile == "" || in.Password == "" || in.ISOCode == "" {
		s.reject("login", domain.ValidationError{Field: "form", Msg: errFillAll})
		return
	}
	in.Mobile = in.ISOCode + in.Mobile

	resp, err := s.backend.Login(ctx, in)
	if err != nil {
		s.reject("login", err)
		return
	}

	s.mu.Lock()
	s.token = resp.Token
	s.mu.Unlock()

	s.enrichAdmin(ctx, resp.Token)

	s.mu.Lock()
	s.authenticated = true
	s.user = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.tokens.Save(resp.Token); err != nil {
		s.reject("login", err)
		return
	}
	s.peekExpiry(resp.Token)
	s.notify.Success(resp.Message)
}

// ResetPassword posts to forgot-password. It never logs the user in.
func (s *Store) ResetPassword(ctx context.Context, in models.ResetInput) bool {
	s.setErr("")
	if in.Mobile == "" || in.Password == "" || in.ISOCode == "" ||
		in.Answer == "" || in.Question == "" {
		s.reject("reset_password", domain.ValidationError{Field: "form", Msg: errFillAll})
		return false
	}
	in.Mobile = in.ISOCode + in.Mobile

	resp, err := s.backend.ForgotPassword(ctx, in)
	if err != nil {
		s.reject("reset_password", err)
		return false
	}
	s.notify.Success(resp.Message)
	return true
}

// VerifyOTP completes account verification and logs the session in.
func (s *Store) VerifyOTP(ctx context.Context, otp, mobile string) {
	s.setErr("")
	if otp == "" || mobile == "" {
		s.reject("verify_otp", domain.ValidationError{Field: "otp", Msg: errFillAll})
		return
	}

	resp, err := s.backend.VerifyAccount(ctx, otp, mobile)
	if err != nil {
		s.reject("verify_otp", err)
		return
	}

	s.mu.Lock()
	s.authenticated = true
	s.user = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.tokens.Save(resp.Token); err != nil {
		s.reject("verify_otp", err)
		return
	}
	s.peekExpiry(resp.Token)
	s.notify.Success(resp.Message)
}

func (s *Store) ResendOTP(ctx context.Context, mobile string) {
	s.setErr("")
	if mobile == "" {
		s.reject("resend_otp", domain.ValidationError{Field: "mobile", Msg: "Please Enter a valid mobile number"})
		return
	}
	resp, err := s.backend.ResendOTP(ctx, mobile)
	if err != nil {
		s.reject("resend_otp", err)
		return
	}
	s.notify.Success(resp.Message)
}

// CheckAuth validates the durably stored token against the backend. The
// primary failure is swallowed (an expired token just leaves the session
// unauthenticated); the admin check runs regardless and can independently
// authenticate an admin session. The checking flag always clears.
func (s *Store) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	s.err = ""
	s.checking = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.checking = false
		s.mu.Unlock()
	}()

	token, err := s.tokens.Load()
	if err != nil {
		// durable-storage read failures are advisory only
		utils.LogEvent("", "auth", "check_auth", "token load skipped: "+err.Error())
	}

	resp, primaryErr := s.backend.CheckAuth(ctx, token)
	if primaryErr == nil {
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
	} else {
		utils.LogEvent("", "auth", "check_auth", "primary check failed: "+primaryErr.Error())
	}

	if admin, err := s.backend.CheckAdmin(ctx, token); err != nil {
		utils.LogEvent("", "auth", "check_auth", "admin check skipped: "+err.Error())
	} else if admin.IsAdmin {
		s.mu.Lock()
		s.admin = true
		s.authenticated = true
		s.user = admin.User
		s.mu.Unlock()
	}

	if primaryErr == nil && resp.User != nil {
		s.mu.Lock()
		s.authenticated = true
		s.user = resp.User
		s.token = token
		s.mu.Unlock()
		s.peekExpiry(token)
	}
}

// CheckAdmin marks the session admin after any successful check-admin
// response; the body is not consulted here, only the enrichment checks read
// it. A missing token makes it a no-op; failure is silently ignored.
func (s *Store) CheckAdmin(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		return
	}
	if _, err := s.backend.CheckAdmin(ctx, token); err != nil {
		utils.LogEvent("", "auth", "check_admin", "skipped: "+err.Error())
		return
	}
	s.mu.Lock()
	s.admin = true
	s.mu.Unlock()
}

// Logout clears the durable token and resets the session. If clearing
// fails, the session is left untouched and the failure reported.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		utils.LogEvent("", "auth", "logout", "clear failed: "+err.Error())
		s.notify.Error("Error Logging out")
		s.setErr("Error Logging out")
		return
	}
	s.Reset()
	s.notify.Success("Logged out successfully")
}

// Reset clears in-memory session state only: no storage writes, no
// notifications. Used for resets that must stay silent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.admin = false
	s.err = ""
	s.user = nil
	s.token = ""
}

// AddCashback replaces the current user's cashback amount. Without a user
// with an identity it does nothing.
func (s *Store) AddCashback(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID == "" {
		utils.LogEvent("", "auth", "add_cashback", "skipped: no user in session")
		return
	}
	u := *s.user
	u.CashbackAmount = amount
	s.user = &u
}

func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *Store) CheckingAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// enrichAdmin is the best-effort admin lookup run after every auth event.
// Failures are logged and swallowed; they never affect the primary outcome.
func (s *Store) enrichAdmin(ctx context.Context, token string) {
	resp, err := s.backend.CheckAdmin(ctx, token)
	if err != nil {
		utils.LogEvent("", "auth", "check_admin", "skipped: "+err.Error())
		return
	}
	if resp.IsAdmin {
		s.mu.Lock()
		s.admin = true
		s.mu.Unlock()
	}
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// reject records a failed operation on the session. Server rejections also
// notify with the server message (or the generic fallback); validation
// failures only set the error, the form shows it inline.
func (s *Store) reject(action string, err error) {
	msg := domain.Message(err)
	utils.LogEvent("", "auth", action, "rejected: "+err.Error())
	if !domain.IsValidation(err) {
		s.notify.Error(msg)
	}
	s.setErr(msg)
}
