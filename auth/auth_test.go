// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http/httptest"
	"testing"
)

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"empty ip", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			if again := HashIP(tt.ip, tt.salt); again != hash {
				t.Errorf("HashIP() not deterministic: %s vs %s", hash, again)
			}
		})
	}

	if HashIP("10.0.0.1", "a") == HashIP("10.0.0.1", "b") {
		t.Error("HashIP() should depend on the salt")
	}
	if HashIP("10.0.0.1", "a") == HashIP("10.0.0.2", "a") {
		t.Error("HashIP() should depend on the IP")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", nil, "203.0.113.7:51234", "203.0.113.7"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", nil, "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "10.0.0.2:80", "198.51.100.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.9"}, "10.0.0.2:80", "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/poll", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVoterFingerprint(t *testing.T) {
	req := httptest.NewRequest("POST", "/poll", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	if fp := VoterFingerprint(req, ""); fp != "" {
		t.Errorf("expected no fingerprint without salt, got %q", fp)
	}

	if fp := VoterFingerprint(req, "salt"); fp != HashIP("203.0.113.7", "salt") {
		t.Errorf("unexpected fingerprint %q", fp)
	}
}
