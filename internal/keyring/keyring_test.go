package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestTokenLifecycle(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}

	if err := SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	token, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if token != "abc123" {
		t.Errorf("GetToken() = %q, want abc123", token)
	}

	// The token and the connection string live under different users
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want ErrNotFound", err)
	}

	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}
	if _, err := GetToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetToken() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteToken() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
