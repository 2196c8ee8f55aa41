// Package web serves rendered maps over HTTP.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"strconv"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-tmx/compositor"
	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/paths"
	"badc0de.net/pkg/go-tmx/tileset"
	"badc0de.net/pkg/go-tmx/tmx"
)

// MapExt is appended to a map name to find its document.
const MapExt = ".tmx"

// maxScale bounds ?scale=.
const maxScale = 4.0

var errMapNotFound = errors.New("map not found")

// Handler renders maps found by a paths.Finder. Tileset images are shared
// between requests through a single image cache.
type Handler struct {
	finder *paths.Finder
	cache  *imagecache.Cache
	maxPx  int
}

// NewHandler constructs a handler serving maps from finder. Renders larger
// than maxPx in either direction are refused.
func NewHandler(finder *paths.Finder, cache *imagecache.Cache, maxPx int) *Handler {
	return &Handler{
		finder: finder,
		cache:  cache,
		maxPx:  maxPx,
	}
}

// RegisterRoutes adds the map routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/map/{name:[^/.]+}.png", h.pngHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/map/{name:[^/.]+}.gif", h.gifHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/map/{name:[^/.]+}.dataurl", h.dataURLHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/map/{name:[^/.]+}/tile/{gid:[0-9]+}.png", h.tileHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/map/{name:[^/.]+}/info", h.infoHandler).Methods(http.MethodGet, http.MethodHead)
}

// openMap loads the named map, returning its modification time for ETags.
func (h *Handler) openMap(name string) (*tmx.Map, os.FileInfo, error) {
	path := h.finder.Find(name + MapExt)
	if path == "" {
		return nil, nil, errors.Wrapf(errMapNotFound, "%q", name)
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := tmx.Open(path, false, h.cache)
	if err != nil {
		return nil, nil, err
	}
	return m, st, nil
}

// httpError maps lookup failures onto 404 and everything else onto 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errMapNotFound),
		errors.Is(err, tileset.ErrNoOwningSource),
		errors.Is(err, tmx.ErrSubimageOutOfBounds):
		status = http.StatusNotFound
	default:
		glog.Errorf("%s %s: %v", r.Method, r.URL, err)
	}
	http.Error(w, err.Error(), status)
}

func etag(kind, name string, st os.FileInfo, extra string) string {
	generation := 1 // bump if the way we generate it changes
	return fmt.Sprintf(`W/"%s:%d:%s:%x:%s"`, kind, generation, name, st.ModTime().UnixNano(), extra)
}

// notModified writes the cache headers and reports whether the client
// already holds tag.
func notModified(w http.ResponseWriter, r *http.Request, tag string, st os.FileInfo) bool {
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", tag)
	w.Header().Set("Last-Modified", st.ModTime().UTC().Format(http.TimeFormat))
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// render composites the map named in the request, honouring ?layer= and
// ?scale=.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, mime string) (image.Image, bool) {
	name := mux.Vars(r)["name"]
	layer := r.URL.Query().Get("layer")

	scale := 1.0
	if s := r.URL.Query().Get("scale"); s != "" {
		var err error
		scale, err = strconv.ParseFloat(s, 64)
		if err != nil || scale <= 0 || scale > maxScale {
			http.Error(w, fmt.Sprintf("scale must be a number in (0, %g]", maxScale), http.StatusBadRequest)
			return nil, false
		}
	}

	m, st, err := h.openMap(name)
	if err != nil {
		httpError(w, r, err)
		return nil, false
	}
	if notModified(w, r, etag("map", name, st, fmt.Sprintf("%s:%g:%s", layer, scale, mime)), st) {
		return nil, false
	}

	sz := m.PixelSize()
	scaled := image.Pt(int(float64(sz.X)*scale), int(float64(sz.Y)*scale))
	if sz.X > h.maxPx || sz.Y > h.maxPx || scaled.X > h.maxPx || scaled.Y > h.maxPx {
		http.Error(w, fmt.Sprintf("render of %v pixels exceeds limit of %d", sz, h.maxPx), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	if scaled.X < 1 || scaled.Y < 1 {
		http.Error(w, "scaled render is empty", http.StatusBadRequest)
		return nil, false
	}

	img, err := compositor.CompositeMap(m, layer)
	if err != nil {
		httpError(w, r, err)
		return nil, false
	}
	if scale == 1 {
		return img, true
	}
	return resize.Resize(uint(scaled.X), uint(scaled.Y), img, resize.Lanczos3), true
}

func (h *Handler) pngHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.render(w, r, "image/png")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) gifHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.render(w, r, "image/gif")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	gif.Encode(w, img, &gif.Options{NumColors: 256, Quantizer: quantize.MedianCutQuantizer{}})
}

func (h *Handler) dataURLHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.render(w, r, "text/plain")
	if !ok {
		return
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		httpError(w, r, err)
		return
	}
	text, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
	if err != nil {
		httpError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

func (h *Handler) tileHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gid, err := strconv.ParseUint(vars["gid"], 10, 32)
	if err != nil {
		http.Error(w, "gid not a number", http.StatusBadRequest)
		return
	}

	m, st, err := h.openMap(vars["name"])
	if err != nil {
		httpError(w, r, err)
		return
	}
	if notModified(w, r, etag("tile", vars["name"], st, strconv.FormatUint(gid, 10)), st) {
		return
	}

	img, err := m.TileSubimage(uint32(gid))
	if err != nil {
		httpError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) infoHandler(w http.ResponseWriter, r *http.Request) {
	m, _, err := h.openMap(mux.Vars(r)["name"])
	if err != nil {
		httpError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(NewInfo(m))
}
