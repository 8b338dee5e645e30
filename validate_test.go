package heliobridge

import (
	"strings"
	"testing"

	"github.com/heliosim/helio-bridge/errors"
)

func newEnv(t *testing.T) (*Bridge, *Env, Handle) {
	t.Helper()
	b := New()
	t.Cleanup(b.Close)
	env := b.Env()
	ctx := env.CreateContext()
	if ctx == NullHandle {
		t.Fatal("CreateContext failed")
	}
	return b, env, ctx
}

func TestCreateSolarPositionTriples(t *testing.T) {
	_, env, ctx := newEnv(t)

	tests := []struct {
		name     string
		utc      float64
		lat, lon float64
		ok       bool
	}{
		{"davis", -8, 38.5, -121.7, true},
		{"equator", 0, 0, 0, true},
		{"date line", 12, -45, 180, true},
		{"edge latitudes", -12, 90, -180, true},
		{"latitude high", 0, 90.01, 0, false},
		{"latitude low", 0, -91, 0, false},
		{"longitude high", 0, 0, 180.5, false},
		{"longitude low", 0, 0, -181, false},
		{"utc high", 12.5, 0, 0, false},
		{"utc low", -13, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := env.CreateSolarPosition(ctx, tt.utc, tt.lat, tt.lon)
			if tt.ok {
				if h == NullHandle {
					_, msg := env.LastError()
					t.Fatalf("creation failed: %s", msg)
				}
				if env.HasError() {
					t.Error("error record set after success")
				}
				env.DestroySolarPosition(h)
				return
			}
			if h != NullHandle {
				t.Fatal("creation should have failed")
			}
			kind, _ := env.LastError()
			if kind != errors.KindInvalidParameter {
				t.Errorf("kind = %q, want invalid_parameter", kind)
			}
		})
	}
}

func TestAtmosphericRangeRejections(t *testing.T) {
	_, env, ctx := newEnv(t)
	sun := env.CreateSolarPosition(ctx, -8, 38.5, -121.7)

	tests := []struct {
		name                                       string
		pressure, temperature, humidity, turbidity float64
	}{
		{"negative pressure", -1, 288, 0.5, 2},
		{"negative temperature", 101325, -0.1, 0.5, 2},
		{"humidity above one", 101325, 288, 1.1, 2},
		{"humidity negative", 101325, 288, -0.2, 2},
		{"negative turbidity", 101325, 288, 0.5, -3},
	}

	ops := map[string]func(p, T, rh, tb float64) float64{
		"SolarFlux":       func(p, T, rh, tb float64) float64 { return env.SolarFlux(sun, p, T, rh, tb) },
		"SolarFluxPAR":    func(p, T, rh, tb float64) float64 { return env.SolarFluxPAR(sun, p, T, rh, tb) },
		"SolarFluxNIR":    func(p, T, rh, tb float64) float64 { return env.SolarFluxNIR(sun, p, T, rh, tb) },
		"DiffuseFraction": func(p, T, rh, tb float64) float64 { return env.DiffuseFraction(sun, p, T, rh, tb) },
	}

	for opName, op := range ops {
		for _, tt := range tests {
			t.Run(opName+"/"+tt.name, func(t *testing.T) {
				// Invalid calls are idempotent: repeating yields identical
				// results and the same error every time.
				for i := 0; i < 3; i++ {
					got := op(tt.pressure, tt.temperature, tt.humidity, tt.turbidity)
					if got != 0 {
						t.Fatalf("result = %v, want zero sentinel", got)
					}
					kind, _ := env.LastError()
					if kind != errors.KindInvalidParameter {
						t.Fatalf("kind = %q, want invalid_parameter", kind)
					}
				}
			})
		}
	}
}

func TestValidationPrecedesEngineWork(t *testing.T) {
	_, env, ctx := newEnv(t)
	gen := env.CreateTreeGenerator(ctx)

	// A failing range check must short-circuit before the engine builds
	// anything: the context's primitive count stays untouched.
	before := env.ContextPrimitiveCount(ctx)
	if ok := env.SetTrunkSegmentResolution(gen, 1); ok {
		t.Fatal("expected rejection of resolution below 3")
	}
	if env.BuildTree(gen, "", Vec3{}) != 0 {
		t.Fatal("expected rejection of empty species")
	}
	if after := env.ContextPrimitiveCount(ctx); after != before {
		t.Errorf("engine work happened despite failed validation: %d -> %d", before, after)
	}
}

func TestNilOutPointerRejected(t *testing.T) {
	_, env, ctx := newEnv(t)
	sun := env.CreateSolarPosition(ctx, -8, 38.5, -121.7)

	if ok := env.SunDirection(sun, nil); ok {
		t.Fatal("nil out-pointer accepted")
	}
	kind, _ := env.LastError()
	if kind != errors.KindInvalidParameter {
		t.Errorf("kind = %q, want invalid_parameter", kind)
	}

	if ok := env.GetDate(ctx, nil); ok {
		t.Fatal("nil out-pointer accepted")
	}
	if ok := env.SunriseTime(sun, nil); ok {
		t.Fatal("nil out-pointer accepted")
	}
}

func TestHandleChecksComeFirst(t *testing.T) {
	_, env, _ := newEnv(t)

	// Null handle and out-of-range latitude together: the handle check is
	// declared first and must win.
	if h := env.CreateSolarPosition(NullHandle, 0, 95, 0); h != NullHandle {
		t.Fatal("expected failure")
	}
	_, msg := env.LastError()
	if !containsAny(msg, "handle", "context") {
		t.Errorf("error %q should name the handle check", msg)
	}
}

func TestDateTimeValidation(t *testing.T) {
	_, env, ctx := newEnv(t)

	bad := [][3]int{{0, 6, 2023}, {32, 6, 2023}, {1, 0, 2023}, {1, 13, 2023}}
	for _, d := range bad {
		if env.SetDate(ctx, d[0], d[1], d[2]) {
			t.Errorf("SetDate(%v) accepted", d)
		}
	}
	if !env.SetDate(ctx, 21, 6, 2023) {
		t.Error("valid date rejected")
	}

	badTimes := [][3]int{{-1, 0, 0}, {24, 0, 0}, {0, 60, 0}, {0, 0, 60}}
	for _, tm := range badTimes {
		if env.SetTime(ctx, tm[0], tm[1], tm[2]) {
			t.Errorf("SetTime(%v) accepted", tm)
		}
	}
	if !env.SetTime(ctx, 12, 30, 15) {
		t.Error("valid time rejected")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
