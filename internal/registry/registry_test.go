package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_CreateIsCaseInsensitive(t *testing.T) {
	r := New[int]()
	r.Register("Burning_Ship", "Burning Ship", func() int { return 7 })

	for _, key := range []string{"burning_ship", "BURNING_SHIP", "  Burning_Ship "} {
		got, err := r.Create(key)
		if err != nil {
			t.Errorf("Create(%q) error = %v", key, err)
			continue
		}
		if got != 7 {
			t.Errorf("Create(%q) = %d, want 7", key, got)
		}
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	r := New[int]()
	_, err := r.Create("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Create(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_CreateCallsFactoryEachTime(t *testing.T) {
	r := New[*int]()
	r.Register("p", "", func() *int { v := 1; return &v })

	a, _ := r.Create("p")
	b, _ := r.Create("p")
	if a == b {
		t.Error("Create returned the same pointer twice, want fresh values")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	r := New[int]()
	r.Register("julia", "Julia Set", func() int { return 0 })
	r.Register("Mandelbrot", "Mandelbrot Set", func() int { return 0 })
	r.Register("celtic", "", func() int { return 0 })

	want := []Entry{
		{Key: "celtic", Name: "celtic"},
		{Key: "julia", Name: "Julia Set"},
		{Key: "mandelbrot", Name: "Mandelbrot Set"},
	}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_IgnoresInvalidRegistrations(t *testing.T) {
	r := New[int]()
	r.Register("", "empty", func() int { return 0 })
	r.Register("   ", "blank", func() int { return 0 })
	r.Register("nil", "nil factory", nil)

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_ReplaceAndUnregister(t *testing.T) {
	r := New[int]()
	r.Register("k", "", func() int { return 1 })
	r.Register("K", "", func() int { return 2 })

	if got, _ := r.Create("k"); got != 2 {
		t.Errorf("Create after replace = %d, want 2", got)
	}

	r.Unregister("K")
	if r.IsRegistered("k") {
		t.Error("IsRegistered after Unregister = true, want false")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New[int]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("k", "", func() int { return i })
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Create("k")
			_ = r.List()
		}()
	}
	wg.Wait()

	if !r.IsRegistered("k") {
		t.Error("expected key to be registered")
	}
}
