package goshape_test

import (
	"reflect"
	"testing"

	goshape "github.com/reoring/goshape"
)

func TestRegistry_RecordResolveSeal(t *testing.T) {
	r := goshape.NewRegistry()
	r.Record(goshape.RefPath("Person"), "Person")
	r.Record(goshape.RefPath("Node"), "Node")
	r.Record(goshape.RefPath("Person"), "Person")

	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}
	if u, ok := r.Resolve("#/definitions/Node"); !ok || u != "Node" {
		t.Fatalf("resolve Node: %q %v", u, ok)
	}
	if _, ok := r.Resolve("#/definitions/Missing"); ok {
		t.Fatalf("expected miss")
	}
	if got := r.Paths(); !reflect.DeepEqual(got, []string{"#/definitions/Node", "#/definitions/Person"}) {
		t.Fatalf("paths not sorted: %v", got)
	}
	if got := r.Units(); !reflect.DeepEqual(got, []string{"Node", "Person"}) {
		t.Fatalf("units: %v", got)
	}

	r.Seal()
	if !r.Sealed() {
		t.Fatalf("expected sealed")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when recording into a sealed registry")
		}
	}()
	r.Record(goshape.RefPath("Late"), "Late")
}

func TestRegistry_NilIsEmpty(t *testing.T) {
	var r *goshape.Registry
	if _, ok := r.Resolve("#/definitions/X"); ok || r.Len() != 0 || r.Paths() != nil {
		t.Fatalf("nil registry must behave as empty")
	}
}

func TestTitleFromRef(t *testing.T) {
	if title, ok := goshape.TitleFromRef("#/definitions/Employee"); !ok || title != "Employee" {
		t.Fatalf("got %q %v", title, ok)
	}
	if _, ok := goshape.TitleFromRef("#/components/schemas/Employee"); ok {
		t.Fatalf("foreign prefix must not parse")
	}
}
