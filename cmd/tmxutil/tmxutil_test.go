package main

import (
	"bytes"
	"context"
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-tmx/tileset"
	"badc0de.net/pkg/go-tmx/tmx"
	"badc0de.net/pkg/go-tmx/ttesting"
)

var red = color.RGBA{R: 255, A: 255}

func writeMap(t *testing.T, dir string, compressed bool) string {
	t.Helper()
	sheet := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)
	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, sheet)
	f.Close()

	m := tmx.New(2, 2, 8, 8)
	if _, err := m.AddTileset(&tileset.Tileset{Name: "sheet", FirstGID: 1, TileWidth: 8, TileHeight: 8, ImageSource: "sheet.png"}); err != nil {
		t.Fatal(err)
	}
	l := tmx.NewLayer("Ground", 2, 2)
	copy(l.Data, []uint32{1, 0, 0, 1})
	m.Layers = append(m.Layers, l)
	path := filepath.Join(dir, "m.tmx")
	if err := m.Save(path, compressed); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, false)
	outDir := filepath.Join(dir, "out")

	require.Equal(t, subcommands.ExitSuccess, run(t, &convertCmd{}, "-o", outDir, path))
	b, err := os.ReadFile(filepath.Join(outDir, "m.tmx"))
	require.NoError(t, err)
	require.Containsf(t, string(b), `compression="gzip"`, "converted map is not compressed")
	require.NoFileExists(t, filepath.Join(outDir, "m.tmx.tmp"))

	// Tileset images stay next to the input, so only the layer data is compared.
	in, err := tmx.Open(path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmx.Open(filepath.Join(outDir, "m.tmx"), false, nil)
	if err != nil {
		t.Fatal(err)
	}
	var want, got strings.Builder
	in.Layers[0].WriteText(&want)
	out.Layers[0].WriteText(&got)
	ttesting.AssertEqualString(t, "layer", got.String(), want.String())
}

func TestConvertFails(t *testing.T) {
	require.Equal(t, subcommands.ExitFailure, run(t, &convertCmd{}, filepath.Join(t.TempDir(), "missing.tmx")))
	require.Equal(t, subcommands.ExitUsageError, run(t, &convertCmd{}))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, true)
	outPath := filepath.Join(dir, "m.png")

	if st := run(t, &renderCmd{}, "-o", outPath, path); st != subcommands.ExitSuccess {
		t.Fatalf("render: exit status %v", st)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertSize(t, "render", img, 16, 16)
	ttesting.AssertRegionColor(t, "top left", img, image.Rect(0, 0, 8, 8), red)
	ttesting.AssertRegionColor(t, "top right", img, image.Rect(8, 0, 16, 8), color.RGBA{})
}

func TestInfoPrint(t *testing.T) {
	dir := t.TempDir()
	path := writeMap(t, dir, true)
	m, err := tmx.Open(path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := (&infoCmd{}).print(&buf, "m.tmx", m); err != nil {
		t.Fatal(err)
	}
	want := "m.tmx: 1.0 orthogonal map, 2x2 tiles of 8x8 px\n" +
		"  tileset \"sheet\": firstgid 1, 8x8 px, image \"sheet.png\"\n" +
		"  layer \"Ground\"\n"
	ttesting.AssertEqualString(t, "info", buf.String(), want)
}
