// Package api is the REST client for the tour-booking backend.
// All endpoints live under /api/v1; booking endpoints and the auth checks
// are bearer-authenticated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
)

const basePath = "/api/v1"

// maxBody caps response reads; backend payloads are small JSON documents.
const maxBody = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// AuthResponse is the token+user payload returned by register, login,
// verify-account and check-auth.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type AdminResponse struct {
	IsAdmin bool         `json:"isAdmin"`
	User    *models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateTourResponse struct {
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
}

type VerifyPaymentResponse struct {
	Message        string `json:"message"`
	CashbackAmount int64  `json:"CashbackAmount"`
}

func (c *Client) Register(ctx context.Context, in models.UserInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, in models.LoginInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, in models.ResetInput) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyAccount(ctx context.Context, otp, mobile string) (*AuthResponse, error) {
	body := map[string]string{"otp": otp, "mobile": mobile}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPut, "/auth/verify-account", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendOTP(ctx context.Context, mobile string) (*MessageResponse, error) {
	body := map[string]string{"mobile": mobile}
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/resend-otp", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckAuth(ctx context.Context, token string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check-auth", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckAdmin(ctx context.Context, token string) (*AdminResponse, error) {
	var out AdminResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check-admin", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTour(ctx context.Context, token string, p models.BookingPayload) (*CreateTourResponse, error) {
	var out CreateTourResponse
	if err := c.do(ctx, http.MethodPost, "/booking/create-tour", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTourWithoutPayment(ctx context.Context, token string, p models.BookingPayload) (*CreateTourResponse, error) {
	var out CreateTourResponse
	if err := c.do(ctx, http.MethodPost, "/booking/create-tour-without-payment", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPayment(ctx context.Context, token string, p models.VerifyPaymentPayload) (*VerifyPaymentResponse, error) {
	var out VerifyPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/booking/verify-payment", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "encode request", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reader)
	if err != nil {
		return domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// transport failure, handled like any rejected request
		return domain.APIError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return domain.APIError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg MessageResponse
		_ = json.Unmarshal(data, &msg)
		return domain.APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.InternalError{Msg: fmt.Sprintf("decode %s response", path), Err: err}
		}
	}
	return nil
}
