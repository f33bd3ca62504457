package storage

import (
	"testing"

	"github.com/mycoai/taxotagger-web/internal/models"
)

func TestRunStore(t *testing.T) {
	store := New()

	if _, exists := store.Get("missing"); exists {
		t.Error("Expected missing run to not exist")
	}

	run := &models.Run{ID: "run_1", SequenceIDs: []string{"a"}}
	store.Set(run.ID, run)

	got, exists := store.Get("run_1")
	if !exists {
		t.Fatal("Expected run_1 to exist")
	}
	if got.ID != "run_1" {
		t.Errorf("Expected run_1, got %s", got.ID)
	}

	all := store.GetAll()
	if len(all) != 1 {
		t.Errorf("Expected 1 run, got %d", len(all))
	}

	store.Delete("run_1")
	if _, exists := store.Get("run_1"); exists {
		t.Error("Expected run_1 to be deleted")
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	store := New()
	store.Set("run_1", &models.Run{ID: "run_1"})

	all := store.GetAll()
	delete(all, "run_1")

	if _, exists := store.Get("run_1"); !exists {
		t.Error("Mutating the GetAll result must not affect the store")
	}
}
