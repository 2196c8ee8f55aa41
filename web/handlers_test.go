package web

import (
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/paths"
	"badc0de.net/pkg/go-tmx/props"
	"badc0de.net/pkg/go-tmx/tileset"
	"badc0de.net/pkg/go-tmx/tmx"
	"badc0de.net/pkg/go-tmx/ttesting"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

// setup writes a 2x1 map called "town" using a two-tile red/green sheet.
func setup(t *testing.T, maxPx int) (*mux.Router, *imagecache.Cache) {
	t.Helper()
	dir := t.TempDir()

	sheet := image.NewRGBA(image.Rect(0, 0, 32, 16))
	draw.Draw(sheet, image.Rect(0, 0, 16, 16), &image.Uniform{red}, image.Point{}, draw.Src)
	draw.Draw(sheet, image.Rect(16, 0, 32, 16), &image.Uniform{green}, image.Point{}, draw.Src)
	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, sheet); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m := tmx.New(2, 1, 16, 16)
	m.Properties = props.Properties{{Name: "music", Value: "town.ogg"}}
	if _, err := m.AddTileset(&tileset.Tileset{Name: "sheet", FirstGID: 1, TileWidth: 16, TileHeight: 16, ImageSource: "sheet.png"}); err != nil {
		t.Fatal(err)
	}
	ground := tmx.NewLayer("Ground", 2, 1)
	copy(ground.Data, []uint32{1, 2})
	m.Layers = append(m.Layers, ground)
	if err := m.Save(filepath.Join(dir, "town.tmx"), true); err != nil {
		t.Fatal(err)
	}

	cache := imagecache.New(4)
	r := mux.NewRouter()
	NewHandler(&paths.Finder{Dirs: []string{dir}}, cache, maxPx).RegisterRoutes(r)
	return r, cache
}

func get(r http.Handler, url string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPNG(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	ttesting.AssertEqualString(t, "content type", rec.Header().Get("Content-Type"), "image/png")
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertSize(t, "render", img, 32, 16)
	ttesting.AssertRegionColor(t, "first tile", img, image.Rect(0, 0, 16, 16), red)
	ttesting.AssertRegionColor(t, "second tile", img, image.Rect(16, 0, 32, 16), green)
}

func TestPNGScaled(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town.png?scale=0.5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertSize(t, "thumbnail", img, 16, 8)

	for _, bad := range []string{"0", "-1", "x", "100"} {
		if rec := get(r, "/map/town.png?scale="+bad); rec.Code != http.StatusBadRequest {
			t.Errorf("scale=%s: status %d; want %d", bad, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestPNGTooLarge(t *testing.T) {
	r, _ := setup(t, 20)
	if rec := get(r, "/map/town.png"); rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status %d; want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestUnknownMap(t *testing.T) {
	r, _ := setup(t, 1024)
	for _, url := range []string{"/map/nowhere.png", "/map/nowhere/info", "/map/nowhere/tile/1.png"} {
		if rec := get(r, url); rec.Code != http.StatusNotFound {
			t.Errorf("%s: status %d; want %d", url, rec.Code, http.StatusNotFound)
		}
	}
}

func TestETag(t *testing.T) {
	r, cache := setup(t, 1024)
	rec := get(r, "/map/town.png")
	tag := rec.Header().Get("ETag")
	if tag == "" {
		t.Fatalf("no ETag")
	}
	rec = get(r, "/map/town.png", "If-None-Match", tag)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status %d; want %d", rec.Code, http.StatusNotModified)
	}
	if other := get(r, "/map/town.png?layer=Ground").Header().Get("ETag"); other == tag {
		t.Errorf("layer filter does not change the ETag")
	}
	ttesting.AssertEqualInt(t, "cached images", cache.Len(), 1)
}

func TestGIF(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town.gif")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	img, err := gif.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertSize(t, "gif", img, 32, 16)
}

func TestDataURL(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town.dataurl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if body := rec.Body.String(); !strings.HasPrefix(body, "data:image/png;base64,") {
		t.Errorf("body %.40q is not a png data url", body)
	}
}

func TestTile(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town/tile/2.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertSize(t, "tile", img, 16, 16)
	ttesting.AssertRegionColor(t, "tile", img, img.Bounds(), green)

	if rec := get(r, "/map/town/tile/9.png"); rec.Code != http.StatusNotFound {
		t.Errorf("out of bounds tile: status %d; want %d", rec.Code, http.StatusNotFound)
	}
}

func TestInfo(t *testing.T) {
	r, _ := setup(t, 1024)
	rec := get(r, "/map/town/info")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var got Info
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := Info{
		Version:     "1.0",
		Orientation: "orthogonal",
		Width:       2,
		Height:      1,
		TileWidth:   16,
		TileHeight:  16,
		Tilesets:    []TilesetInfo{{Name: "sheet", FirstGID: 1, TileWidth: 16, TileHeight: 16, Image: "sheet.png"}},
		Layers:      []string{"Ground"},
		Properties:  map[string]string{"music": "town.ogg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info mismatch (-want +got):\n%s", diff)
	}
}
