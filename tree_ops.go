package heliobridge

import (
	"github.com/heliosim/helio-bridge/engine"
	"github.com/heliosim/helio-bridge/errors"
	"github.com/heliosim/helio-bridge/resource"
)

// treeOf resolves a tree generator handle inside the invoke stage.
func treeOf(e *Env, op string, h Handle) (*engine.TreeGenerator, error) {
	g, ok := resource.Of[*engine.TreeGenerator](e.bridge.table, h, resource.KindTreeGenerator)
	if !ok {
		return nil, errors.NullHandle(op, "generator")
	}
	return g, nil
}

// CreateTreeGenerator allocates a tree generator bound to a context.
// Sentinel: NullHandle.
func (e *Env) CreateTreeGenerator(ctx Handle) Handle {
	const op = "CreateTreeGenerator"
	checks := []check{
		e.checkHandle(op, "context", ctx, resource.KindContext),
	}
	return run(e, op, NullHandle, checks, func() (Handle, error) {
		c, err := ctxOf(e, op, ctx)
		if err != nil {
			return NullHandle, err
		}
		g := engine.NewTreeGenerator(c)
		return e.bridge.table.Insert(resource.KindTreeGenerator, g), nil
	})
}

// DestroyTreeGenerator releases a tree generator. Geometry built by the
// generator stays in its context.
func (e *Env) DestroyTreeGenerator(h Handle) {
	e.destroy("DestroyTreeGenerator", h, resource.KindTreeGenerator)
}

// BuildTree generates a tree of the named species with its base at origin
// and returns its tree ID. IDs start at 1; sentinel: 0. An unknown species
// is a RuntimeFailure.
func (e *Env) BuildTree(h Handle, species string, origin Vec3) uint32 {
	const op = "BuildTree"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkNonEmpty(op, "species", species),
	}
	return run(e, op, 0, checks, func() (uint32, error) {
		g, err := treeOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return g.BuildTree(species, origin.X, origin.Y, origin.Z)
	})
}

// uuidQuery dispatches one of the list-returning UUID entry points. The
// returned slice aliases the Env's scratch buffer; see the package
// documentation for the validity window.
func (e *Env) uuidQuery(op string, h Handle, treeID uint32,
	f func(*engine.TreeGenerator, uint32) ([]uint32, error)) ([]uint32, int) {

	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
	}
	out := run[[]uint32](e, op, nil, checks, func() ([]uint32, error) {
		g, err := treeOf(e, op, h)
		if err != nil {
			return nil, err
		}
		uuids, err := f(g, treeID)
		if err != nil {
			return nil, err
		}
		return e.stashUUIDs(uuids), nil
	})
	if out == nil {
		return nil, 0
	}
	return out, len(out)
}

// TrunkUUIDs returns the trunk primitive UUIDs of a built tree along with
// their count. Sentinel: (nil, 0). The slice is valid only until the next
// list-returning call on this Env.
func (e *Env) TrunkUUIDs(h Handle, treeID uint32) ([]uint32, int) {
	return e.uuidQuery("TrunkUUIDs", h, treeID, (*engine.TreeGenerator).TrunkUUIDs)
}

// BranchUUIDs returns the branch primitive UUIDs of a built tree.
// Sentinel: (nil, 0). Same validity window as TrunkUUIDs.
func (e *Env) BranchUUIDs(h Handle, treeID uint32) ([]uint32, int) {
	return e.uuidQuery("BranchUUIDs", h, treeID, (*engine.TreeGenerator).BranchUUIDs)
}

// LeafUUIDs returns the leaf primitive UUIDs of a built tree.
// Sentinel: (nil, 0). Same validity window as TrunkUUIDs.
func (e *Env) LeafUUIDs(h Handle, treeID uint32) ([]uint32, int) {
	return e.uuidQuery("LeafUUIDs", h, treeID, (*engine.TreeGenerator).LeafUUIDs)
}

// AllUUIDs returns every primitive UUID of a built tree. Sentinel:
// (nil, 0). Same validity window as TrunkUUIDs.
func (e *Env) AllUUIDs(h Handle, treeID uint32) ([]uint32, int) {
	return e.uuidQuery("AllUUIDs", h, treeID, (*engine.TreeGenerator).AllUUIDs)
}

// SetBranchRecursionLevel overrides the branching depth for subsequently
// built trees. Sentinel: false.
func (e *Env) SetBranchRecursionLevel(h Handle, level int) bool {
	const op = "SetBranchRecursionLevel"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkIntMin(op, "level", level, 0),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		g.SetBranchRecursionLevel(level)
		return nil
	})
}

// SetTrunkSegmentResolution sets the radial resolution of trunk segments.
// Sentinel: false.
func (e *Env) SetTrunkSegmentResolution(h Handle, n int) bool {
	const op = "SetTrunkSegmentResolution"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkIntMin(op, "n", n, 3),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		g.SetTrunkSegmentResolution(n)
		return nil
	})
}

// SetBranchSegmentResolution sets the radial resolution of branch
// segments. Sentinel: false.
func (e *Env) SetBranchSegmentResolution(h Handle, n int) bool {
	const op = "SetBranchSegmentResolution"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkIntMin(op, "n", n, 3),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		g.SetBranchSegmentResolution(n)
		return nil
	})
}

// SetLeafSubdivisions sets the subpatch grid each leaf is tessellated
// into. Sentinel: false.
func (e *Env) SetLeafSubdivisions(h Handle, nx, ny int) bool {
	const op = "SetLeafSubdivisions"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkIntMin(op, "nx", nx, 1),
		checkIntMin(op, "ny", ny, 1),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		g.SetLeafSubdivisions(nx, ny)
		return nil
	})
}

// SeedRandomGenerator reseeds the generator's random stream. Sentinel:
// false.
func (e *Env) SeedRandomGenerator(h Handle, seed int64) bool {
	const op = "SeedRandomGenerator"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		g.SeedRandomGenerator(seed)
		return nil
	})
}

// LoadTreeLibrary merges species definitions from an XML tree library
// file into the generator. The file format is owned by the engine; a
// malformed file is a RuntimeFailure. Sentinel: false.
func (e *Env) LoadTreeLibrary(h Handle, path string) bool {
	const op = "LoadTreeLibrary"
	checks := []check{
		e.checkHandle(op, "generator", h, resource.KindTreeGenerator),
		checkNonEmpty(op, "path", path),
	}
	return runVoid(e, op, checks, func() error {
		g, err := treeOf(e, op, h)
		if err != nil {
			return err
		}
		return g.LoadLibrary(path)
	})
}
