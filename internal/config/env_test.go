package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("CALLBACK_ADDR", "")
	t.Setenv("HTTP_TIMEOUT", "")

	env := LoadEnv()
	if env.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("api url = %q", env.APIBaseURL)
	}
	if env.CallbackAddr != "127.0.0.1:8742" {
		t.Fatalf("callback addr = %q", env.CallbackAddr)
	}
	if env.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", env.HTTPTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_URL", " https://api.example.com/ ")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_live_abc")

	env := LoadEnv()
	if env.APIBaseURL != "https://api.example.com" {
		t.Fatalf("api url = %q (trailing slash should be trimmed)", env.APIBaseURL)
	}
	if env.HTTPTimeout != 5*time.Second {
		t.Fatalf("timeout = %v", env.HTTPTimeout)
	}
	if env.RazorpayKeyID != "rzp_live_abc" {
		t.Fatalf("key id = %q", env.RazorpayKeyID)
	}
}

func TestLoadEnvBadTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	if env := LoadEnv(); env.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", env.HTTPTimeout)
	}
}
