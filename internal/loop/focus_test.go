package loop

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewFocusRegistry_Empty(t *testing.T) {
	_, err := NewFocusRegistry()
	if !errors.Is(err, ErrNoViews) {
		t.Errorf("NewFocusRegistry() error = %v, want ErrNoViews", err)
	}
}

func TestNewFocusRegistry_Duplicate(t *testing.T) {
	_, err := NewFocusRegistry(View{ID: ViewSearch}, View{ID: ViewSearch})
	if err == nil {
		t.Error("expected error for duplicate view")
	}
}

func TestFocusRegistry_Cycle(t *testing.T) {
	f, err := NewFocusRegistry(DefaultViews(DefaultKeyMap())...)
	if err != nil {
		t.Fatalf("NewFocusRegistry() error = %v", err)
	}
	if f.Current() != ViewDependencies {
		t.Fatalf("Current() = %v, want dependencies", f.Current())
	}

	var forward []ViewID
	for i := 0; i < 4; i++ {
		forward = append(forward, f.Next())
	}
	want := []ViewID{ViewSearch, ViewVersions, ViewDependencies, ViewSearch}
	if !reflect.DeepEqual(forward, want) {
		t.Errorf("Next() sequence = %v, want %v", forward, want)
	}

	if got := f.Previous(); got != ViewDependencies {
		t.Errorf("Previous() = %v, want dependencies", got)
	}
	if got := f.Previous(); got != ViewVersions {
		t.Errorf("Previous() = %v, want wrap to versions", got)
	}
}

func TestFocusRegistry_SingleView(t *testing.T) {
	f, err := NewFocusRegistry(View{ID: ViewDependencies})
	if err != nil {
		t.Fatalf("NewFocusRegistry() error = %v", err)
	}
	if got := f.Next(); got != ViewDependencies {
		t.Errorf("Next() = %v, want dependencies", got)
	}
	if got := f.Previous(); got != ViewDependencies {
		t.Errorf("Previous() = %v, want dependencies", got)
	}
}

func TestFocusRegistry_Focus(t *testing.T) {
	f, _ := NewFocusRegistry(DefaultViews(DefaultKeyMap())...)
	if !f.Focus(ViewVersions) {
		t.Fatal("Focus(versions) = false")
	}
	if f.Current() != ViewVersions {
		t.Errorf("Current() = %v", f.Current())
	}
	if f.Focus(ViewID("nope")) {
		t.Error("Focus on unknown view should fail")
	}
	if f.Current() != ViewVersions {
		t.Error("failed Focus changed the current view")
	}
	if f.Handler(ViewID("nope")) != nil {
		t.Error("Handler for unknown view should be nil")
	}
	if got := f.Views(); len(got) != 3 {
		t.Errorf("Views() = %v", got)
	}
}
