package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/anima2d/engine/assets/loaders"
)

func writeShader(t *testing.T, dir, name, vertex, fragment string) {
	t.Helper()
	base := filepath.Join(dir, ShaderDir, name)
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(base+loaders.VertexExtension, []byte(vertex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(base+loaders.FragmentExtension, []byte(fragment), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newManager(t *testing.T, dir string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatalf("NewAssetManager() error = %v", err)
	}
	if err := am.Initialize(dir); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() {
		if err := am.Shutdown(); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})
	return am
}

func TestAssetManager_LoadShader(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "basic2d", "v", "f")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	am := newManager(t, dir)
	if !am.Has(filepath.Join(ShaderDir, "basic2d.vert")) {
		t.Error("vertex stage should be indexed")
	}
	if am.Has("notes.txt") {
		t.Error("unknown file types must not be indexed")
	}

	src, err := am.LoadShader("basic2d")
	if err != nil {
		t.Fatalf("LoadShader() error = %v", err)
	}
	if src.Name != "basic2d" || src.Vertex != "v" || src.Fragment != "f" {
		t.Errorf("LoadShader() = %+v", src)
	}

	if _, err := am.LoadShader("missing"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("LoadShader(missing) error = %v, want ErrAssetNotFound", err)
	}
}

func TestAssetManager_MissingDirectory(t *testing.T) {
	am := newManager(t, filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := am.LoadShader("basic2d"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("LoadShader() error = %v, want ErrAssetNotFound", err)
	}
}

func TestAssetManager_ShaderChanges(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "basic2d", "v", "f")
	am := newManager(t, dir)

	frag := filepath.Join(dir, ShaderDir, "basic2d"+loaders.FragmentExtension)
	if err := os.WriteFile(frag, []byte("f2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-am.ShaderChanges():
		if name != "basic2d" {
			t.Errorf("changed shader = %q, want basic2d", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no shader change reported")
	}

	// the first event may be the truncation, so wait for the final content
	deadline := time.Now().Add(5 * time.Second)
	for {
		src, err := am.LoadShader("basic2d")
		if err != nil {
			t.Fatal(err)
		}
		if src.Fragment == "f2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("fragment = %q, want f2", src.Fragment)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAssetManager_ShutdownTwice(t *testing.T) {
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := am.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
	if err := am.addRecursive(t.TempDir()); !errors.Is(err, ErrClosed) {
		t.Errorf("addRecursive after Shutdown error = %v, want ErrClosed", err)
	}
}

func TestDetermineAssetType(t *testing.T) {
	tests := map[string]loaders.ResourceType{
		"a/b.vert":     loaders.ResourceTypeShader,
		"a/b.frag":     loaders.ResourceTypeShader,
		"anima2d.toml": loaders.ResourceTypeNone,
		"image.png":    loaders.ResourceTypeNone,
	}
	for path, want := range tests {
		if got := determineAssetType(path); got != want {
			t.Errorf("determineAssetType(%q) = %s, want %s", path, got, want)
		}
	}
}
