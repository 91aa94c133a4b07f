package scope

import (
	"testing"

	"minilang/internal/value"
)

func TestAddRejectsRedeclaration(t *testing.T) {
	tbl := New()
	if tbl.Add("x") == nil {
		t.Fatalf("first Add(x) should succeed")
	}
	if tbl.Add("x") != nil {
		t.Fatalf("second Add(x) at the same level should fail")
	}
}

func TestSearchFallsBackToTopLevel(t *testing.T) {
	tbl := New()
	top := tbl.Add("g")
	v := value.NewInt(1)
	Bind(top, v)
	v.Decref()

	tbl.PushLevel()
	tbl.Add("local")

	found := tbl.Search("g")
	if found != top {
		t.Fatalf("Search did not fall back to the top level for %q", "g")
	}
	if tbl.Search("missing") != nil {
		t.Fatalf("Search found a name that was never declared")
	}
	tbl.PopLevel()
}

func TestInnerLevelShadowsOuter(t *testing.T) {
	tbl := New()
	outer := tbl.Add("x")
	ov := value.NewInt(1)
	Bind(outer, ov)
	ov.Decref()

	tbl.PushLevel()
	inner := tbl.Add("x")
	iv := value.NewInt(2)
	Bind(inner, iv)
	iv.Decref()

	found := tbl.Search("x")
	if found != inner {
		t.Fatalf("Search should resolve to the innermost binding of a shadowed name")
	}
	got, _ := value.ToInt(found.Value)
	if got != 2 {
		t.Fatalf("shadowed x = %d, want 2", got)
	}
	tbl.PopLevel()

	found = tbl.Search("x")
	if found != outer {
		t.Fatalf("after PopLevel, Search should see the outer binding again")
	}
}

func TestPopLevelReleasesBindings(t *testing.T) {
	tbl := New()
	tbl.PushLevel()
	id := tbl.Add("tmp")
	v := value.NewInt(5)
	Bind(id, v)
	v.Decref()
	if v.Refcount() != 1 {
		t.Fatalf("Bind should hold exactly one reference, got %d", v.Refcount())
	}
	tbl.PopLevel()
	if v.Refcount() != 0 {
		t.Fatalf("PopLevel should release the binding's reference, refcount = %d", v.Refcount())
	}
}

func TestRebindReleasesPreviousValue(t *testing.T) {
	tbl := New()
	id := tbl.Add("x")
	first := value.NewInt(1)
	Bind(id, first)
	first.Decref()

	second := value.NewInt(2)
	Bind(id, second)
	second.Decref()

	if first.Refcount() != 0 {
		t.Fatalf("rebinding should release the previous value, refcount = %d", first.Refcount())
	}
	Unbind(id)
	if second.Refcount() != 0 {
		t.Fatalf("Unbind should release the current value, refcount = %d", second.Refcount())
	}
}
