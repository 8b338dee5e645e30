// Package hostmod exports the boundary surface as a wazero host module so
// WebAssembly guests can drive the simulation engine through the same
// flat, handle-based calling convention native hosts use.
//
// The module is exported under the "helio" namespace with core-wasm
// signatures: handles and booleans are i32, angles and fluxes are f64,
// and out-parameters are guest memory offsets. Guests poll the error
// channel with last_error_kind / last_error_message after any call that
// returned a sentinel.
package hostmod

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	heliobridge "github.com/heliosim/helio-bridge"
	"github.com/heliosim/helio-bridge/errors"
)

// Namespace is the import namespace guests use.
const Namespace = "helio"

// Numeric error kinds on the wire, stable for guests.
const (
	errNone             = 0
	errInvalidParameter = 1
	errRuntimeFailure   = 2
	errUnknown          = 3
)

// Module binds one Env to a host module instance. WASM guests execute on
// a single thread, so one Env per instance satisfies the boundary's
// thread-isolation contract.
type Module struct {
	env *heliobridge.Env
}

// Instantiate builds and instantiates the "helio" host module on r, with
// all entry points backed by a fresh Env of b.
func Instantiate(ctx context.Context, r wazero.Runtime, b *heliobridge.Bridge) (api.Module, error) {
	m := &Module{env: b.Env()}
	builder := r.NewHostModuleBuilder(Namespace)

	// Context ops.
	m.export(builder, "create_context", nil, retI32, func(_ api.Module, stack []uint64) {
		stack[0] = uint64(m.env.CreateContext())
	})
	m.export(builder, "destroy_context", sig(i32), nil, func(_ api.Module, stack []uint64) {
		m.env.DestroyContext(handleAt(stack, 0))
	})
	m.export(builder, "set_date", sig(i32, i32, i32, i32), retI32, func(_ api.Module, stack []uint64) {
		ok := m.env.SetDate(handleAt(stack, 0), int(int32(stack[1])), int(int32(stack[2])), int(int32(stack[3])))
		stack[0] = boolWord(ok)
	})
	m.export(builder, "set_time", sig(i32, i32, i32, i32), retI32, func(_ api.Module, stack []uint64) {
		ok := m.env.SetTime(handleAt(stack, 0), int(int32(stack[1])), int(int32(stack[2])), int(int32(stack[3])))
		stack[0] = boolWord(ok)
	})

	// Solar ops.
	m.export(builder, "create_solarposition", sig(i32, f64, f64, f64), retI32, func(_ api.Module, stack []uint64) {
		h := m.env.CreateSolarPosition(handleAt(stack, 0),
			api.DecodeF64(stack[1]), api.DecodeF64(stack[2]), api.DecodeF64(stack[3]))
		stack[0] = uint64(h)
	})
	m.export(builder, "destroy_solarposition", sig(i32), nil, func(_ api.Module, stack []uint64) {
		m.env.DestroySolarPosition(handleAt(stack, 0))
	})
	m.export(builder, "sun_elevation", sig(i32), retF64, func(_ api.Module, stack []uint64) {
		stack[0] = api.EncodeF64(m.env.SunElevation(handleAt(stack, 0)))
	})
	m.export(builder, "sun_zenith", sig(i32), retF64, func(_ api.Module, stack []uint64) {
		stack[0] = api.EncodeF64(m.env.SunZenith(handleAt(stack, 0)))
	})
	m.export(builder, "sun_azimuth", sig(i32), retF64, func(_ api.Module, stack []uint64) {
		stack[0] = api.EncodeF64(m.env.SunAzimuth(handleAt(stack, 0)))
	})
	m.export(builder, "sun_direction", sig(i32, i32), retI32, func(mod api.Module, stack []uint64) {
		var v heliobridge.Vec3
		if !m.env.SunDirection(handleAt(stack, 0), &v) {
			stack[0] = boolWord(false)
			return
		}
		stack[0] = boolWord(writeVec3(mod, uint32(stack[1]), v))
	})
	m.export(builder, "solar_flux", sig(i32, f64, f64, f64, f64), retF64, func(_ api.Module, stack []uint64) {
		flux := m.env.SolarFlux(handleAt(stack, 0),
			api.DecodeF64(stack[1]), api.DecodeF64(stack[2]),
			api.DecodeF64(stack[3]), api.DecodeF64(stack[4]))
		stack[0] = api.EncodeF64(flux)
	})

	// Tree ops.
	m.export(builder, "create_treegenerator", sig(i32), retI32, func(_ api.Module, stack []uint64) {
		stack[0] = uint64(m.env.CreateTreeGenerator(handleAt(stack, 0)))
	})
	m.export(builder, "destroy_treegenerator", sig(i32), nil, func(_ api.Module, stack []uint64) {
		m.env.DestroyTreeGenerator(handleAt(stack, 0))
	})
	m.export(builder, "build_tree", sig(i32, i32, i32, f64, f64, f64), retI32, func(mod api.Module, stack []uint64) {
		species, ok := readString(mod, uint32(stack[1]), uint32(stack[2]))
		if !ok {
			stack[0] = 0
			return
		}
		id := m.env.BuildTree(handleAt(stack, 0), species, heliobridge.Vec3{
			X: api.DecodeF64(stack[3]),
			Y: api.DecodeF64(stack[4]),
			Z: api.DecodeF64(stack[5]),
		})
		stack[0] = uint64(id)
	})
	m.export(builder, "tree_uuids", sig(i32, i32, i32, i32), retI32, func(mod api.Module, stack []uint64) {
		uuids, n := m.env.AllUUIDs(handleAt(stack, 0), uint32(stack[1]))
		if n == 0 {
			stack[0] = 0
			return
		}
		stack[0] = uint64(writeUUIDs(mod, uint32(stack[2]), uint32(stack[3]), uuids))
	})

	// Error channel.
	m.export(builder, "last_error_kind", nil, retI32, func(_ api.Module, stack []uint64) {
		kind, _ := m.env.LastError()
		stack[0] = uint64(kindCode(kind))
	})
	m.export(builder, "last_error_message", sig(i32, i32), retI32, func(mod api.Module, stack []uint64) {
		_, msg := m.env.LastError()
		stack[0] = uint64(writeString(mod, uint32(stack[0]), uint32(stack[1]), msg))
	})
	m.export(builder, "clear_error", nil, nil, func(_ api.Module, stack []uint64) {
		m.env.ClearError()
	})

	return builder.Instantiate(ctx)
}

// Signature shorthands.
const (
	i32 = api.ValueTypeI32
	f64 = api.ValueTypeF64
)

var (
	retI32 = []api.ValueType{i32}
	retF64 = []api.ValueType{f64}
)

func sig(types ...api.ValueType) []api.ValueType { return types }

func (m *Module) export(b wazero.HostModuleBuilder, name string,
	params, results []api.ValueType, fn func(api.Module, []uint64)) {

	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			fn(mod, stack)
		}), params, results).
		Export(name)
}

func handleAt(stack []uint64, i int) heliobridge.Handle {
	return heliobridge.Handle(uint32(stack[i]))
}

func boolWord(ok bool) uint64 {
	if ok {
		return 1
	}
	return 0
}

func kindCode(kind errors.Kind) int32 {
	switch kind {
	case errors.KindNone:
		return errNone
	case errors.KindInvalidParameter:
		return errInvalidParameter
	case errors.KindRuntimeFailure:
		return errRuntimeFailure
	default:
		return errUnknown
	}
}

// Guest memory accessors. A call arriving without an attached memory
// (e.g. a direct invocation of the host module) fails softly: the entry
// point reports its sentinel rather than trapping.

func readString(mod api.Module, ptr, length uint32) (string, bool) {
	mem := mod.Memory()
	if mem == nil {
		return "", false
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(data), true
}

func writeString(mod api.Module, ptr, maxLen uint32, s string) int32 {
	mem := mod.Memory()
	if mem == nil {
		return 0
	}
	data := []byte(s)
	if uint32(len(data)) > maxLen {
		data = data[:maxLen]
	}
	if !mem.Write(ptr, data) {
		return 0
	}
	return int32(len(data))
}

func writeVec3(mod api.Module, ptr uint32, v heliobridge.Vec3) bool {
	mem := mod.Memory()
	if mem == nil {
		return false
	}
	return mem.WriteFloat64Le(ptr, v.X) &&
		mem.WriteFloat64Le(ptr+8, v.Y) &&
		mem.WriteFloat64Le(ptr+16, v.Z)
}

func writeUUIDs(mod api.Module, ptr, maxCount uint32, uuids []uint32) int32 {
	mem := mod.Memory()
	if mem == nil {
		return 0
	}
	n := uint32(len(uuids))
	if n > maxCount {
		n = maxCount
	}
	for i := uint32(0); i < n; i++ {
		if !mem.WriteUint32Le(ptr+4*i, uuids[i]) {
			return int32(i)
		}
	}
	return int32(n)
}
