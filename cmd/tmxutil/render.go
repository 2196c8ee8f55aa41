package main

import (
	"context"
	"flag"
	"image/png"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmx/compositor"
	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/tmx"
)

type renderCmd struct {
	layer  string
	output string
	width  int
	height int
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "render a map to a png file" }
func (c *renderCmd) Usage() string {
	return "tmxutil render [-layer <name>] [-width N -height N] -o <out.png> <map.tmx>\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layer, "layer", "", "only render the layer with this name; by default every layer except "+compositor.CollisionLayer)
	f.StringVar(&c.output, "o", "", "output png path")
	f.IntVar(&c.width, "width", 0, "canvas width in pixels; defaults to the map's width")
	f.IntVar(&c.height, "height", 0, "canvas height in pixels; defaults to the map's height")
}

func (c *renderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 || c.output == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := c.render(f.Arg(0)); err != nil {
		glog.Error(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *renderCmd) render(path string) error {
	m, err := tmx.Open(path, true, imagecache.New(imagecache.DefaultCapacity))
	if err != nil {
		return err
	}
	sz := m.PixelSize()
	if c.width > 0 {
		sz.X = c.width
	}
	if c.height > 0 {
		sz.Y = c.height
	}
	img, err := compositor.Render(m, sz.X, sz.Y, c.layer)
	if err != nil {
		return err
	}
	out, err := os.Create(c.output)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return errors.Wrap(err, "encoding png")
	}
	return out.Close()
}
