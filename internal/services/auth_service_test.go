package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"finledger/internal/testutil"
)

func TestAuthService(t *testing.T) {
	t.Run("plaintext_password", func(t *testing.T) {
		svc, err := NewAuthService("admin", "s3cret", "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Authenticate("admin", "s3cret"))
		testutil.AssertAppError(t, svc.Authenticate("admin", "wrong"), "INVALID_CREDENTIALS")
		testutil.AssertAppError(t, svc.Authenticate("root", "s3cret"), "INVALID_CREDENTIALS")
	})

	t.Run("bcrypt_hash", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
		testutil.AssertNoError(t, err)

		svc, err := NewAuthService("admin", "", string(hash))
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.Authenticate("admin", "hunter2"))
	})

	t.Run("misconfigured", func(t *testing.T) {
		if _, err := NewAuthService("admin", "", ""); err == nil {
			t.Error("expected an error without any password")
		}
		if _, err := NewAuthService("admin", "", "not-a-hash"); err == nil {
			t.Error("expected an error for a malformed hash")
		}
	})
}
