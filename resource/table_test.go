package resource

import (
	"testing"
)

type destroyCounter struct {
	n int
}

func (d *destroyCounter) Destroy() { d.n++ }

func TestTableBasic(t *testing.T) {
	table := NewTable()

	h := table.Insert(KindContext, "ctx")
	if h == Null {
		t.Fatal("expected non-null handle")
	}

	v, ok := table.Get(h)
	if !ok || v != "ctx" {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	if _, ok := table.GetKind(h, KindContext); !ok {
		t.Fatal("GetKind with matching kind failed")
	}
	if _, ok := table.GetKind(h, KindSolarPosition); ok {
		t.Fatal("GetKind with wrong kind should fail")
	}

	if !table.Remove(h) {
		t.Fatal("Remove failed")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get after Remove should fail")
	}
}

func TestNullHandleNeverFaults(t *testing.T) {
	table := NewTable()

	if table.Remove(Null) {
		t.Error("Remove(Null) should report false")
	}
	if _, ok := table.Get(Null); ok {
		t.Error("Get(Null) should fail")
	}
	if _, ok := table.Kind(Null); ok {
		t.Error("Kind(Null) should fail")
	}
	// Out-of-range handles behave like null ones.
	if table.Remove(Handle(9999)) {
		t.Error("Remove of never-allocated handle should report false")
	}
}

func TestDestroyRunsExactlyOnce(t *testing.T) {
	table := NewTable()
	d := &destroyCounter{}

	h := table.Insert(KindSolarPosition, d)
	if !table.Remove(h) {
		t.Fatal("first Remove failed")
	}
	if table.Remove(h) {
		t.Fatal("second Remove should be a no-op")
	}
	if d.n != 1 {
		t.Fatalf("Destroy ran %d times, want 1", d.n)
	}
}

func TestSlotRecycling(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(KindContext, 1)
	table.Remove(h1)
	h2 := table.Insert(KindTreeGenerator, 2)

	if h2 != h1 {
		t.Fatalf("expected slot reuse, got %d then %d", h1, h2)
	}
	// The recycled slot must carry the new kind tag.
	if _, ok := table.GetKind(h2, KindContext); ok {
		t.Error("stale kind tag survived recycling")
	}
	if _, ok := table.GetKind(h2, KindTreeGenerator); !ok {
		t.Error("new kind tag not visible")
	}
}

func TestOf(t *testing.T) {
	table := NewTable()
	h := table.Insert(KindContext, 42)

	v, ok := Of[int](table, h, KindContext)
	if !ok || v != 42 {
		t.Fatalf("Of[int] = %v, %v", v, ok)
	}
	if _, ok := Of[string](table, h, KindContext); ok {
		t.Error("Of with wrong Go type should fail")
	}
	if _, ok := Of[int](table, h, KindTreeGenerator); ok {
		t.Error("Of with wrong kind should fail")
	}
}

func TestClearAndLen(t *testing.T) {
	table := NewTable()
	d1, d2 := &destroyCounter{}, &destroyCounter{}

	table.Insert(KindContext, d1)
	table.Insert(KindSolarPosition, d2)
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	table.Clear()
	if table.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", table.Len())
	}
	if d1.n != 1 || d2.n != 1 {
		t.Errorf("destructors ran %d/%d times, want 1/1", d1.n, d2.n)
	}
}
