// Package heliobridge exposes the simulation engine (solar position and
// radiation modeling, procedural tree generation) through a flat,
// handle-based function surface a foreign host can consume.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	heliobridge/     Root package: Env entry points, validation, dispatch
//	├── engine/      The wrapped simulation library (solar, trees)
//	├── resource/    Tagged handle table for engine-owned objects
//	├── errors/      Structured error taxonomy for the boundary
//	├── hostmod/     wazero host module exporting the surface to WASM
//	└── cmd/sunview/ Interactive TUI driving the boundary surface
//
// # Quick Start
//
// Create a bridge, take an Env, and call entry points:
//
//	b := heliobridge.New()
//	defer b.Close()
//
//	env := b.Env()
//	ctx := env.CreateContext()
//	sun := env.CreateSolarPosition(ctx, -8, 38.5, -121.7)
//	if sun == heliobridge.NullHandle {
//	    kind, msg := env.LastError()
//	    log.Fatalf("%s: %s", kind, msg)
//	}
//	fmt.Println(env.SunElevation(sun)) // degrees
//
// # Calling Convention
//
// Every entry point follows the same four-step dispatch: the Env's error
// record is cleared, arguments are validated in a fixed order (handles,
// out-pointers, ranges), the engine is invoked with all failure signals
// caught, and either the result is written or the error record is set and
// a documented sentinel is returned (null handle, 0, false, or nil).
//
// A sentinel may coincide with a legitimate result — a genuine zero
// elevation looks like the float sentinel — so after any call whose result
// is ambiguous the host must consult HasError or LastError. A cleared
// error record after a call means the returned value is genuine.
//
// # Thread Safety
//
// An Env is NOT safe for concurrent use: it owns the error record and the
// scratch buffers for list-shaped results, and each host thread must hold
// its own Env (Bridge.Env is cheap). The handle table behind all Envs is
// shared and internally locked, so handles may be passed between threads;
// concurrent use of the engine object a handle denotes is undefined, as
// documented by the engine itself.
//
// # Buffer Validity
//
// List-returning entry points (the tree UUID queries) return a slice
// aliasing an Env-owned scratch buffer. The contents are valid only until
// the next list-returning call on the same Env; copy them out first.
package heliobridge
