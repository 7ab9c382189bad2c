// ABOUTME: Tests for the account registry
// ABOUTME: Verifies registration, verification, federated sign-in and status
package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/harper/chambers/internal/models"
)

func TestRegister_CreatesAccountWithDefaultChamber(t *testing.T) {
	svc := newTestServices(t, Options{})

	outcome, err := svc.Registry.Register("  a@x.com ", "Ann", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if outcome != Created {
		t.Fatalf("Register() = %v, want created", outcome)
	}

	account, err := svc.Registry.Get("a@x.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if account.DisplayName != "Ann" || account.Tier != models.DefaultTier || !account.IsActive() {
		t.Errorf("account = %+v", account)
	}
	if account.SecretHash == "pw1" {
		t.Error("secret stored in the clear")
	}

	chambers, err := svc.Chambers.List("a@x.com", true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(chambers) != 1 || chambers[0].Label != models.DefaultChamberLabel {
		t.Fatalf("chambers = %+v, want one %q", chambers, models.DefaultChamberLabel)
	}
	if !hasKind(auditKinds(t, svc), models.EventRegistration) {
		t.Error("missing REGISTRATION audit event")
	}
}

func TestRegister_Uniqueness(t *testing.T) {
	svc := newTestServices(t, Options{})
	mustRegister(t, svc, "a@x.com")

	for i := 0; i < 3; i++ {
		outcome, err := svc.Registry.Register("a@x.com", "Other", "pw2")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if outcome != Duplicate {
			t.Errorf("Register() = %v, want duplicate", outcome)
		}
	}

	accounts, _, err := svc.Registry.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if accounts != 1 {
		t.Errorf("accounts = %d, want 1", accounts)
	}
	n, err := svc.Store.Chambers().Count("a@x.com")
	if err != nil || n != 1 {
		t.Errorf("chamber count = %d, %v; want 1", n, err)
	}

	// The first registration's secret still verifies
	name, ok, err := svc.Registry.Verify("a@x.com", "pw")
	if err != nil || !ok || name != "Test a@x.com" {
		t.Errorf("Verify() = %q, %v, %v", name, ok, err)
	}
}

func TestRegister_ConcurrentSameKey(t *testing.T) {
	svc := newTestServices(t, Options{})

	const workers = 10
	outcomes := make([]RegisterOutcome, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = svc.Registry.Register("race@x.com", "Racer", "pw")
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range outcomes {
		if errs[i] != nil {
			t.Fatalf("Register() error = %v", errs[i])
		}
		if outcomes[i] == Created {
			created++
		}
	}
	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	n, _ := svc.Store.Chambers().Count("race@x.com")
	if n != 1 {
		t.Errorf("chamber count = %d, want 1", n)
	}
}

func TestRegister_Invalid(t *testing.T) {
	svc := newTestServices(t, Options{})

	tests := []struct {
		name, key, secret string
	}{
		{"empty key", "", "pw"},
		{"blank key", "   ", "pw"},
		{"empty secret", "a@x.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := svc.Registry.Register(tt.key, "Ann", tt.secret)
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if outcome != Invalid {
				t.Errorf("Register() = %v, want invalid", outcome)
			}
		})
	}

	accounts, _, _ := svc.Registry.Stats()
	if accounts != 0 {
		t.Errorf("accounts = %d, want 0", accounts)
	}
}

func TestRegister_DisplayNameDefaultsToKey(t *testing.T) {
	svc := newTestServices(t, Options{})
	if _, err := svc.Registry.Register("b@x.com", " ", "pw"); err != nil {
		t.Fatal(err)
	}
	account, err := svc.Registry.Get("b@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if account.DisplayName != "b@x.com" {
		t.Errorf("DisplayName = %q, want key", account.DisplayName)
	}
}

func TestVerify(t *testing.T) {
	svc := newTestServices(t, Options{})
	if _, err := svc.Registry.Register("a@x.com", "Ann", "pw1"); err != nil {
		t.Fatal(err)
	}

	name, ok, err := svc.Registry.Verify("a@x.com", "pw1")
	if err != nil || !ok || name != "Ann" {
		t.Fatalf("Verify(right) = %q, %v, %v", name, ok, err)
	}

	account, _ := svc.Registry.Get("a@x.com")
	if account.LoginCount != 1 {
		t.Errorf("LoginCount = %d, want 1", account.LoginCount)
	}

	for _, tc := range []struct{ key, secret string }{
		{"a@x.com", "wrong"},
		{"nobody@x.com", "pw1"},
		{"a@x.com", ""},
	} {
		name, ok, err := svc.Registry.Verify(tc.key, tc.secret)
		if err != nil {
			t.Fatalf("Verify(%s) error = %v", tc.key, err)
		}
		if ok || name != "" {
			t.Errorf("Verify(%s, %s) = %q, %v; want rejected", tc.key, tc.secret, name, ok)
		}
	}

	account, _ = svc.Registry.Get("a@x.com")
	if account.LoginCount != 1 {
		t.Errorf("LoginCount after failures = %d, want 1", account.LoginCount)
	}

	kinds := auditKinds(t, svc)
	if !hasKind(kinds, models.EventLogin) || !hasKind(kinds, models.EventLoginFailed) {
		t.Errorf("audit kinds = %v, want LOGIN and LOGIN_FAILED", kinds)
	}
}

func TestVerify_Suspended(t *testing.T) {
	svc := newTestServices(t, Options{})
	mustRegister(t, svc, "a@x.com")

	if err := svc.Registry.Suspend("a@x.com"); err != nil {
		t.Fatalf("Suspend() error = %v", err)
	}
	if _, ok, _ := svc.Registry.Verify("a@x.com", "pw"); ok {
		t.Error("suspended account verified")
	}

	if err := svc.Registry.Reinstate("a@x.com"); err != nil {
		t.Fatalf("Reinstate() error = %v", err)
	}
	if _, ok, _ := svc.Registry.Verify("a@x.com", "pw"); !ok {
		t.Error("reinstated account rejected")
	}

	if err := svc.Registry.Suspend("ghost@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Suspend(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestSignInFederated(t *testing.T) {
	svc := newTestServices(t, Options{})
	id := Identity{Key: "g@x.com", DisplayName: "Gita"}

	created, err := svc.Registry.SignInFederated(id)
	if err != nil || !created {
		t.Fatalf("SignInFederated(first) = %v, %v; want created", created, err)
	}
	chambers, _ := svc.Chambers.List("g@x.com", false)
	if len(chambers) != 1 || chambers[0].Label != models.FederatedChamberLabel {
		t.Fatalf("chambers = %+v, want one %q", chambers, models.FederatedChamberLabel)
	}

	created, err = svc.Registry.SignInFederated(id)
	if err != nil || created {
		t.Fatalf("SignInFederated(second) = %v, %v; want existing", created, err)
	}
	chambers, _ = svc.Chambers.List("g@x.com", false)
	if len(chambers) != 1 {
		t.Errorf("second sign-in created another chamber: %d", len(chambers))
	}

	// A federated account has no secret anyone knows
	if _, ok, _ := svc.Registry.Verify("g@x.com", ""); ok {
		t.Error("federated account verified with an empty secret")
	}

	kinds := auditKinds(t, svc)
	if !hasKind(kinds, models.EventOAuthSignup) || !hasKind(kinds, models.EventOAuthLogin) {
		t.Errorf("audit kinds = %v", kinds)
	}

	if _, err := svc.Registry.SignInFederated(Identity{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("SignInFederated(empty) error = %v, want ErrInvalid", err)
	}
}

func TestSignInFederated_ExistingRegisteredAccount(t *testing.T) {
	svc := newTestServices(t, Options{})
	mustRegister(t, svc, "a@x.com")

	created, err := svc.Registry.SignInFederated(Identity{Key: "a@x.com"})
	if err != nil || created {
		t.Fatalf("SignInFederated() = %v, %v", created, err)
	}
	// Password still works after a federated sign-in
	if _, ok, _ := svc.Registry.Verify("a@x.com", "pw"); !ok {
		t.Error("password sign-in broken by federated sign-in")
	}

	if err := svc.Registry.Suspend("a@x.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Registry.SignInFederated(Identity{Key: "a@x.com"}); !errors.Is(err, ErrSuspended) {
		t.Errorf("SignInFederated(suspended) error = %v, want ErrSuspended", err)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	svc := newTestServices(t, Options{})
	if _, err := svc.Registry.Get("ghost@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_StoreUnavailable(t *testing.T) {
	svc := newTestServices(t, Options{})
	_ = svc.Store.Close()

	if _, err := svc.Registry.Register("a@x.com", "Ann", "pw"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Register() error = %v, want ErrStoreUnavailable", err)
	}
	if _, _, err := svc.Registry.Verify("a@x.com", "pw"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Verify() error = %v, want ErrStoreUnavailable", err)
	}
	if _, _, err := svc.Registry.Stats(); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Stats() error = %v, want ErrStoreUnavailable", err)
	}
}
