package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadEmptyKeepsDefaults(t *testing.T) {
	c, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadOverridesDefaults(t *testing.T) {
	c, err := Read(strings.NewReader("listen_address: \":9090\"\nmap_dirs:\n  - maps\n  - more\ncache_capacity: 7\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		ListenAddress: ":9090",
		MapDirs:       []string{"maps", "more"},
		CacheCapacity: 7,
		MaxRenderPx:   Default().MaxRenderPx,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field":  "listen_port: 80\n",
		"negative cache": "cache_capacity: -1\n",
		"zero max px":    "max_render_px: 0\n",
		"no dirs":        "map_dirs: []\n",
		"bad yaml":       "map_dirs: [\n",
	} {
		if _, err := Read(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: Read succeeded; want error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmxweb.yaml")
	if err := os.WriteFile(path, []byte("max_render_px: 1024\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxRenderPx != 1024 {
		t.Errorf("MaxRenderPx = %d; want 1024", c.MaxRenderPx)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load of missing file succeeded")
	}
}
