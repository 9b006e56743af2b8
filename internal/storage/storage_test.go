package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := st.Load(ctx, "auth"); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	want := []byte(`{"isAuthenticated":true}`)
	if err := st.Save(ctx, "auth", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := st.Load(ctx, "auth")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := st.Save(ctx, "cart", []byte(`{"items":[{"id":"i1"}]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, "cart", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := st.Load(ctx, "cart")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"items":[]}` {
		t.Fatalf("expected full overwrite, got %s", got)
	}

	// No temp files left behind.
	if _, err := os.Stat(filepath.Join(dir, "cart.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, err=%v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := st.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete of absent key must not fail: %v", err)
	}

	if err := st.Save(ctx, "auth", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Delete(ctx, "auth"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := st.Load(ctx, "auth"); err != nil || ok {
		t.Fatalf("expected key gone, ok=%v err=%v", ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	if _, ok, err := st.Load(ctx, "auth"); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	data := []byte("snapshot")
	if err := st.Save(ctx, "auth", data); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's slice must not change the stored copy.
	data[0] = 'X'
	got, ok, err := st.Load(ctx, "auth")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != "snapshot" {
		t.Fatalf("stored snapshot aliased caller memory: %s", got)
	}

	if err := st.Delete(ctx, "auth"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := st.Load(ctx, "auth"); ok {
		t.Fatalf("expected key gone after delete")
	}
}
