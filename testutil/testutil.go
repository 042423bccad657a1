// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/db"
	"github.com/danielhkuo/devops-poll/models"
	"github.com/danielhkuo/devops-poll/store"
	"github.com/danielhkuo/devops-poll/tally"
)

// WriteTallyFile writes contents to data.json in a fresh temp dir and
// returns its path
func WriteTallyFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write tally file: %v", err)
	}
	return path
}

// ReadTallyFile parses the tally file at path
func ReadTallyFile(t *testing.T, path string) *tally.Tally {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read tally file: %v", err)
	}

	var tl tally.Tally
	if err := tl.UnmarshalJSON(data); err != nil {
		t.Fatalf("Failed to parse tally file: %v", err)
	}
	return &tl
}

// NewFileStore returns a file store seeded with contents
func NewFileStore(t *testing.T, contents string) *store.FileStore {
	t.Helper()
	return store.NewFileStore(WriteTallyFile(t, contents), false)
}

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is its own database, so keep exactly one
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewSQLStore returns a SQLite-backed store with labels registered
func NewSQLStore(t *testing.T, labels ...string) *store.SQLStore {
	t.Helper()

	s := store.NewSQLStore(SetupTestDB(t), models.BackendSQLite)
	if err := s.Seed(context.Background(), labels); err != nil {
		t.Fatalf("Failed to seed options: %v", err)
	}
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		StoreType:     models.BackendFile,
		DataFile:      "data.json",
		RabbitMQQueue: "votes",
		IPHashSalt:    "test-ip-salt",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// MakeVoteRequest creates a POST /poll request voting for label
func MakeVoteRequest(label string) *http.Request {
	form := url.Values{}
	form.Set(models.VoteField, label)
	return MakeFormRequest("POST", "/poll", form)
}

// MakeFormRequest creates a URL-encoded form request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertView checks a decoded GET /poll response against expected
func AssertView(t *testing.T, got, expected []models.OptionPercentage) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d options, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Option %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}
