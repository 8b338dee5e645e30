package heliobridge

import (
	"fmt"
	"testing"

	"github.com/heliosim/helio-bridge/errors"
)

func TestShimCatchesPanics(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	got := run(env, "PanickyOp", -1, nil, func() (int, error) {
		panic("engine blew up")
	})
	if got != -1 {
		t.Fatalf("result = %d, want sentinel -1", got)
	}
	kind, msg := env.LastError()
	if kind != errors.KindUnknown {
		t.Errorf("kind = %q, want unknown", kind)
	}
	if msg == "" {
		t.Error("panic message lost")
	}
}

func TestShimClassifiesEngineErrors(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	boom := errors.New(errors.StageInvoke, errors.KindRuntimeFailure).
		Op("Op").Detail("engine says no").Build()

	got := run(env, "Op", 0.0, nil, func() (float64, error) {
		return 0, boom
	})
	if got != 0 {
		t.Fatalf("result = %v, want sentinel", got)
	}
	if kind, _ := env.LastError(); kind != errors.KindRuntimeFailure {
		t.Errorf("kind = %q, want runtime_failure", kind)
	}
}

func TestShimValidationShortCircuits(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	invoked := false
	failing := func() *errors.Error {
		return errors.OutOfRange("Op", "x", 99, "[0, 1]")
	}
	run(env, "Op", 0, []check{failing}, func() (int, error) {
		invoked = true
		return 1, nil
	})
	if invoked {
		t.Error("engine invoked despite failed validation")
	}
}

func TestRunVoidResults(t *testing.T) {
	b := New()
	defer b.Close()
	env := b.Env()

	if ok := runVoid(env, "Op", nil, func() error { return nil }); !ok {
		t.Error("success should report true")
	}
	if env.HasError() {
		t.Error("error record set after success")
	}

	boom := errors.EngineFailure("Op", fmt.Errorf("nope"))
	if ok := runVoid(env, "Op", nil, func() error { return boom }); ok {
		t.Error("failure should report false")
	}
	if !env.HasError() {
		t.Error("error record not set after failure")
	}
}
