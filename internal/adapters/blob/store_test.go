package blob_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/define/internal/adapters/blob"
	"go.trai.ch/define/internal/core/domain"
)

func TestStore_StoreAndGet(t *testing.T) {
	store := blob.NewStore(t.TempDir())
	ctx := context.Background()

	if err := store.Store(ctx, "define/abc", `{"values":{}}`); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := store.Get(ctx, "define/abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `{"values":{}}` {
		t.Errorf("expected stored blob back, got %q", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := blob.NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "define/missing")
	if !errors.Is(err, domain.ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// 1. Write through one store instance
	store1 := blob.NewStore(dir)
	if err := store1.Store(ctx, "define/xyz", "payload"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// 2. Read through a fresh instance pointing at the same directory
	store2 := blob.NewStore(dir)
	got, err := store2.Get(ctx, "define/xyz")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "payload" {
		t.Errorf("expected %q, got %q", "payload", got)
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := blob.NewStore(t.TempDir())
	ctx := context.Background()

	if err := store.Store(ctx, "k", "v1"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Store(ctx, "k", "v2"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v2" {
		t.Errorf("expected overwritten value, got %q", got)
	}
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store := blob.NewStore(dir)
	ctx := context.Background()

	if err := store.Store(ctx, "k", "v"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound after delete, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".blob" {
			t.Errorf("expected blob file removed, found %s", e.Name())
		}
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	store := blob.NewStore(t.TempDir())

	if err := store.Delete(context.Background(), "never-stored"); err != nil {
		t.Errorf("deleting a missing key should not error, got %v", err)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	store := blob.NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := store.Store(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
