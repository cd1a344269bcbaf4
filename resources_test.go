package engine_test

import (
	"testing"

	"github.com/JollyPixel/engine"
)

type assetCache struct {
	hits int
}

type saveStore struct {
	path string
}

// go test -run ^TestResourcesAddGet$ . -count 1
func TestResourcesAddGet(t *testing.T) {
	res := &engine.Resources{}

	cache := &assetCache{hits: 3}
	res.Add(cache)

	got, ok := engine.GetResource[assetCache](res)
	if !ok {
		t.Fatal("Expected the cache to be registered")
	}
	if got != cache {
		t.Errorf("Expected the registered pointer back, got %v", got)
	}
	if !engine.HasResource[assetCache](res) {
		t.Error("Expected HasResource to report the cache")
	}
	if engine.HasResource[saveStore](res) {
		t.Error("Expected HasResource to miss an unregistered type")
	}
	if store, ok := engine.GetResource[saveStore](res); ok || store != nil {
		t.Error("Expected GetResource to miss an unregistered type")
	}
}

// go test -run ^TestResourcesRemove$ . -count 1
func TestResourcesRemove(t *testing.T) {
	res := &engine.Resources{}
	res.Add(&assetCache{})

	engine.RemoveResource[assetCache](res)
	if engine.HasResource[assetCache](res) {
		t.Error("Expected the cache to be removed")
	}

	// Removing an absent type is a no-op.
	engine.RemoveResource[assetCache](res)

	res.Add(&assetCache{hits: 1})
	if !engine.HasResource[assetCache](res) {
		t.Error("Expected re-adding after removal to work")
	}
}

// go test -run ^TestResourcesClear$ . -count 1
func TestResourcesClear(t *testing.T) {
	res := &engine.Resources{}
	res.Add(&assetCache{})
	res.Add(&saveStore{path: "saves"})

	res.Clear()
	if engine.HasResource[assetCache](res) || engine.HasResource[saveStore](res) {
		t.Error("Expected Clear to drop every entry")
	}
}

// go test -run ^TestResourcesAddPanics$ . -count 1
func TestResourcesAddPanics(t *testing.T) {
	t.Run("NilValue", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected a panic for a nil resource")
			}
		}()
		res := &engine.Resources{}
		res.Add(nil)
	})

	t.Run("DuplicateType", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected a panic for a duplicate type")
			}
		}()
		res := &engine.Resources{}
		res.Add(&assetCache{})
		res.Add(&assetCache{})
	})
}
