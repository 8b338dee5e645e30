// Package resource implements the handle table for engine-owned objects.
//
// A Handle is a tagged, type-checked capability token: an index into an
// owned arena rather than a raw pointer, so the boundary never relies on
// unchecked pointer reinterpretation. Handle 0 is reserved invalid and is
// the null sentinel. Every entry carries a Kind tag that lookups verify, so
// a tree-generator handle cannot be used where a solar-position handle is
// expected.
//
// Destroyed slots are recycled through a free list. The table therefore
// detects null, never-allocated, and wrong-kind handles, but a handle held
// across its own destruction can alias a later object of the same kind —
// use-after-destroy remains caller discipline, exactly as the engine
// documents it.
package resource
