// Package testutils provides common utilities for testing across the dailyflo project
package testutils

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dailyflo/dailyflo/database"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return db
}

// CloseTestDB closes the test database connection
func CloseTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB from GORM: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close test database: %v", err)
	}
}

// OpenTestStore opens a fresh in-memory store with the schema
// migrated. Each store gets its own named shared-cache database so
// pooled connections see the same data without leaking between tests.
func OpenTestStore(t *testing.T) *database.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	store, err := database.Open(dsn)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	return store
}

// PerformRequest runs one request through a gin engine and records the response
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body []byte, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// WithBasicAuth sets basic auth credentials on a test request
func WithBasicAuth(username, password string) func(*http.Request) {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

// TempFile creates a temporary file for testing
func TempFile(t *testing.T, prefix string) *os.File {
	t.Helper()

	file, err := os.CreateTemp("", prefix)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	t.Cleanup(func() {
		_ = file.Close()           // Best effort close
		_ = os.Remove(file.Name()) // Best effort cleanup
	})

	return file
}

// TempDir creates a temporary directory for testing
func TempDir(t *testing.T, prefix string) string {
	t.Helper()

	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		_ = os.RemoveAll(dir) // Best effort cleanup
	})

	return dir
}

// SetEnv sets an environment variable for the duration of a test
func SetEnv(t *testing.T, key, value string) {
	t.Helper()

	oldValue := os.Getenv(key)
	_ = os.Setenv(key, value) // Best effort

	t.Cleanup(func() {
		if oldValue == "" {
			_ = os.Unsetenv(key) // Best effort
		} else {
			_ = os.Setenv(key, oldValue) // Best effort
		}
	})
}
