package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Env struct {
	// APIBaseURL is the backend base URL; endpoints live under /api/v1.
	APIBaseURL string
	// RazorpayKeyID is the payment gateway public key.
	RazorpayKeyID string
	// CallbackAddr is where the local checkout host listens for the
	// gateway completion callback.
	CallbackAddr string
	// TokenPath is where the durable session token lives.
	TokenPath string
	// ReceiptDir is where booking receipts are written.
	ReceiptDir string
	// HTTPTimeout bounds every backend call.
	HTTPTimeout time.Duration
	// GinMode configures the checkout host engine (debug/release/test).
	GinMode string
}

func LoadEnv() Env {
	apiURL := strings.TrimSpace(os.Getenv("API_URL"))
	if apiURL == "" {
		apiURL = "http://localhost:5000"
	}

	callbackAddr := strings.TrimSpace(os.Getenv("CALLBACK_ADDR"))
	if callbackAddr == "" {
		callbackAddr = "127.0.0.1:8742"
	}

	tokenPath := strings.TrimSpace(os.Getenv("TOKEN_PATH"))
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		tokenPath = filepath.Join(home, ".tourfront", "token")
	}

	receiptDir := strings.TrimSpace(os.Getenv("RECEIPT_DIR"))
	if receiptDir == "" {
		receiptDir = "."
	}

	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return Env{
		APIBaseURL:    strings.TrimRight(apiURL, "/"),
		RazorpayKeyID: strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID")),
		CallbackAddr:  callbackAddr,
		TokenPath:     tokenPath,
		ReceiptDir:    receiptDir,
		HTTPTimeout:   timeout,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
	}
}
