package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gallery-backend/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testPool connects to the database named by TEST_DATABASE_URL and ensures
// the schema. Tests that need a live Postgres skip when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}
	pool, err := db.Connect(context.Background(), url)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestRegisterDuplicateUser(t *testing.T) {
	svc := NewUserService(testPool(t))
	ctx := context.Background()
	username := uniqueUsername("alice")

	if err := svc.Register(ctx, username, "pw1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(ctx, username, "pw2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("second register: got %v, want ErrUserExists", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	svc := NewUserService(testPool(t))
	ctx := context.Background()
	username := uniqueUsername("alice")

	if err := svc.Register(ctx, username, "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Verify(ctx, username, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Verify(ctx, uniqueUsername("ghost"), "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("missing user: got %v, want ErrInvalidCredentials", err)
	}

	user, err := svc.Verify(ctx, username, "pw1")
	if err != nil {
		t.Fatalf("correct pair: %v", err)
	}
	if user.Username != username || user.ID == 0 {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestChangePassword(t *testing.T) {
	svc := NewUserService(testPool(t))
	ctx := context.Background()
	username := uniqueUsername("alice")

	if err := svc.Register(ctx, username, "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := svc.Verify(ctx, username, "pw1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v, want ErrInvalidCredentials", err)
	}
	if err := svc.ChangePassword(ctx, -1, "pw1", "pw2"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user: got %v, want ErrUserNotFound", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "pw1", "pw2"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Verify(ctx, username, "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid after change")
	}
	if _, err := svc.Verify(ctx, username, "pw2"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
