package engine

import (
	"math/rand"
	"strings"

	"go.uber.org/zap"
)

// TreeParams describes a species archetype in the tree library. Counts are
// base values; the generator jitters them per tree from its random stream.
type TreeParams struct {
	Label            string
	RecursionLevels  int // branching depth below the trunk
	BranchesPerLevel int // child branches per parent
	TrunkSegments    int // trunk sections along its length
	LeavesPerBranch  int // leaves on each terminal branch
}

// builtTree records the primitive UUIDs a single generated tree occupies.
type builtTree struct {
	trunk  []uint32
	branch []uint32
	leaf   []uint32
}

// TreeGenerator procedurally builds trees inside a Context. Each built tree
// gets an ID (starting at 1) and three UUID sets: trunk, branch, and leaf
// primitives, all allocated from the owning context.
type TreeGenerator struct {
	ctx     *Context
	rng     *rand.Rand
	library map[string]TreeParams
	trees   map[uint32]*builtTree
	nextID  uint32

	// Configuration applied to subsequently built trees. A recursion
	// override of -1 means "use the species default".
	recursionOverride int
	trunkRes          int
	branchRes         int
	leafSubdivX       int
	leafSubdivY       int
}

// NewTreeGenerator creates a generator attached to ctx, loaded with the
// built-in species library and a fixed default seed so repeated runs are
// reproducible until reseeded.
func NewTreeGenerator(ctx *Context) *TreeGenerator {
	g := &TreeGenerator{
		ctx:               ctx,
		rng:               rand.New(rand.NewSource(1)),
		library:           make(map[string]TreeParams, len(defaultLibrary)),
		trees:             make(map[uint32]*builtTree),
		nextID:            1,
		recursionOverride: -1,
		trunkRes:          6,
		branchRes:         4,
		leafSubdivX:       1,
		leafSubdivY:       1,
	}
	for _, p := range defaultLibrary {
		g.library[strings.ToLower(p.Label)] = p
	}
	return g
}

var defaultLibrary = []TreeParams{
	{Label: "almond", RecursionLevels: 3, BranchesPerLevel: 4, TrunkSegments: 5, LeavesPerBranch: 14},
	{Label: "apple", RecursionLevels: 3, BranchesPerLevel: 5, TrunkSegments: 4, LeavesPerBranch: 18},
	{Label: "avocado", RecursionLevels: 2, BranchesPerLevel: 6, TrunkSegments: 5, LeavesPerBranch: 20},
	{Label: "lemon", RecursionLevels: 2, BranchesPerLevel: 5, TrunkSegments: 4, LeavesPerBranch: 16},
	{Label: "olive", RecursionLevels: 4, BranchesPerLevel: 3, TrunkSegments: 6, LeavesPerBranch: 10},
	{Label: "peach", RecursionLevels: 3, BranchesPerLevel: 4, TrunkSegments: 4, LeavesPerBranch: 15},
	{Label: "pistachio", RecursionLevels: 3, BranchesPerLevel: 3, TrunkSegments: 5, LeavesPerBranch: 12},
	{Label: "walnut", RecursionLevels: 4, BranchesPerLevel: 4, TrunkSegments: 7, LeavesPerBranch: 11},
}

// Species returns the labels available in the generator's library, in no
// particular order.
func (g *TreeGenerator) Species() []string {
	out := make([]string, 0, len(g.library))
	for name := range g.library {
		out = append(out, name)
	}
	return out
}

// SeedRandomGenerator reseeds the generator's random stream.
func (g *TreeGenerator) SeedRandomGenerator(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// SetBranchRecursionLevel overrides the branching depth for subsequently
// built trees.
func (g *TreeGenerator) SetBranchRecursionLevel(level int) {
	g.recursionOverride = level
}

// SetTrunkSegmentResolution sets the radial resolution of trunk segments.
func (g *TreeGenerator) SetTrunkSegmentResolution(n int) { g.trunkRes = n }

// SetBranchSegmentResolution sets the radial resolution of branch segments.
func (g *TreeGenerator) SetBranchSegmentResolution(n int) { g.branchRes = n }

// SetLeafSubdivisions sets the subpatch grid each leaf is tessellated into.
func (g *TreeGenerator) SetLeafSubdivisions(nx, ny int) {
	g.leafSubdivX = nx
	g.leafSubdivY = ny
}

// BuildTree generates a tree of the named species with its base at
// (x, y, z) and returns its ID. Species lookup is case-insensitive.
func (g *TreeGenerator) BuildTree(species string, x, y, z float64) (uint32, error) {
	p, ok := g.library[strings.ToLower(species)]
	if !ok {
		return 0, ErrUnknownSpecies
	}

	levels := p.RecursionLevels
	if g.recursionOverride >= 0 {
		levels = g.recursionOverride
	}

	t := &builtTree{}

	// Trunk: one primitive strip per radial subdivision of each segment.
	t.trunk = g.ctx.allocUUIDs(p.TrunkSegments * g.trunkRes)

	// Branches: each level multiplies the branch count, with per-tree
	// jitter so no two trees are identical.
	branches := 1
	for lvl := 1; lvl <= levels; lvl++ {
		branches *= g.jitterCount(p.BranchesPerLevel)
		t.branch = append(t.branch, g.ctx.allocUUIDs(branches*g.branchRes)...)
	}

	// Leaves on terminal branches only.
	leaves := branches * g.jitterCount(p.LeavesPerBranch)
	t.leaf = g.ctx.allocUUIDs(leaves * g.leafSubdivX * g.leafSubdivY)

	id := g.nextID
	g.nextID++
	g.trees[id] = t

	Logger().Debug("tree built",
		zap.String("species", p.Label),
		zap.Uint32("tree_id", id),
		zap.Float64s("origin", []float64{x, y, z}),
		zap.Int("trunk", len(t.trunk)),
		zap.Int("branch", len(t.branch)),
		zap.Int("leaf", len(t.leaf)))
	return id, nil
}

// jitterCount perturbs a base count by up to +/-25%, never below 1.
func (g *TreeGenerator) jitterCount(base int) int {
	delta := g.rng.Intn(base/2+1) - base/4
	n := base + delta
	if n < 1 {
		n = 1
	}
	return n
}

// TrunkUUIDs returns the trunk primitive UUIDs of a built tree.
func (g *TreeGenerator) TrunkUUIDs(id uint32) ([]uint32, error) {
	t, ok := g.trees[id]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.trunk, nil
}

// BranchUUIDs returns the branch primitive UUIDs of a built tree.
func (g *TreeGenerator) BranchUUIDs(id uint32) ([]uint32, error) {
	t, ok := g.trees[id]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.branch, nil
}

// LeafUUIDs returns the leaf primitive UUIDs of a built tree.
func (g *TreeGenerator) LeafUUIDs(id uint32) ([]uint32, error) {
	t, ok := g.trees[id]
	if !ok {
		return nil, ErrUnknownTree
	}
	return t.leaf, nil
}

// AllUUIDs returns every primitive UUID of a built tree: trunk, then
// branches, then leaves.
func (g *TreeGenerator) AllUUIDs(id uint32) ([]uint32, error) {
	t, ok := g.trees[id]
	if !ok {
		return nil, ErrUnknownTree
	}
	out := make([]uint32, 0, len(t.trunk)+len(t.branch)+len(t.leaf))
	out = append(out, t.trunk...)
	out = append(out, t.branch...)
	out = append(out, t.leaf...)
	return out, nil
}
