package heliobridge

import (
	"strings"
	"testing"

	"github.com/heliosim/helio-bridge/errors"
)

func TestFreshEnvHasNoError(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	// Clear-then-query on an untouched Env reports "no error".
	env.ClearError()
	kind, msg := env.LastError()
	if kind != errors.KindNone || msg != "" {
		t.Errorf("LastError = %q, %q, want none", kind, msg)
	}
	if env.HasError() {
		t.Error("HasError on untouched Env")
	}
}

func TestErrorClearedOnEntry(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	if h := env.CreateSolarPosition(NullHandle, 0, 0, 0); h != NullHandle {
		t.Fatal("expected failure on null context")
	}
	if !env.HasError() {
		t.Fatal("error record not set")
	}

	// A subsequent successful call must not leave the stale record behind.
	ctx := env.CreateContext()
	if ctx == NullHandle {
		t.Fatal("CreateContext failed")
	}
	if env.HasError() {
		kind, msg := env.LastError()
		t.Errorf("stale error survived successful call: %s %s", kind, msg)
	}
}

func TestFirstErrorWins(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()
	ctx := env.CreateContext()

	// Both latitude and longitude are invalid; the record must name the
	// first failing check in declared order (latitude).
	if h := env.CreateSolarPosition(ctx, 0, 95, 999); h != NullHandle {
		t.Fatal("expected failure")
	}
	_, msg := env.LastError()
	if want := "latitude"; !strings.Contains(msg, want) {
		t.Errorf("error message %q does not name first failing parameter %q", msg, want)
	}
}

func TestQueryDoesNotClear(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	env.CreateSolarPosition(NullHandle, 0, 0, 0)
	k1, m1 := env.LastError()
	k2, m2 := env.LastError()
	if k1 != k2 || m1 != m2 {
		t.Error("LastError must be repeatable without clearing")
	}
}

func TestEnvsDoNotShareErrorState(t *testing.T) {
	b := New()
	defer b.Close()
	e1, e2 := b.Env(), b.Env()

	e1.CreateSolarPosition(NullHandle, 0, 0, 0)
	if !e1.HasError() {
		t.Fatal("e1 should carry an error")
	}
	if e2.HasError() {
		t.Error("error state leaked between Envs")
	}
}

func TestEnvsShareHandleTable(t *testing.T) {
	b := New()
	defer b.Close()
	e1, e2 := b.Env(), b.Env()

	ctx := e1.CreateContext()
	if sun := e2.CreateSolarPosition(ctx, 0, 45, 0); sun == NullHandle {
		_, msg := e2.LastError()
		t.Fatalf("handle not visible from second Env: %s", msg)
	}
}
