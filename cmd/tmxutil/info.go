package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"

	"badc0de.net/pkg/go-tmx/tmx"
	"badc0de.net/pkg/go-tmx/web"
)

type infoCmd struct {
	json bool
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "summarize map documents" }
func (c *infoCmd) Usage() string    { return "tmxutil info [-json] <map.tmx>...\n" }
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the summary as json")
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	for _, path := range f.Args() {
		m, err := tmx.Open(path, false, nil)
		if err != nil {
			glog.Error(err)
			return subcommands.ExitFailure
		}
		if err := c.print(os.Stdout, path, m); err != nil {
			glog.Error(err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *infoCmd) print(w io.Writer, path string, m *tmx.Map) error {
	info := web.NewInfo(m)
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(w, "%s: %s %s map, %dx%d tiles of %dx%d px\n", path, info.Version, info.Orientation, info.Width, info.Height, info.TileWidth, info.TileHeight)
	for _, ts := range info.Tilesets {
		fmt.Fprintf(w, "  tileset %q: firstgid %d, %dx%d px, image %q\n", ts.Name, ts.FirstGID, ts.TileWidth, ts.TileHeight, ts.Image)
	}
	for _, l := range info.Layers {
		fmt.Fprintf(w, "  layer %q\n", l)
	}
	for _, g := range info.ObjectGroups {
		fmt.Fprintf(w, "  objectgroup %q: %d objects\n", g.Name, g.Objects)
	}
	for _, p := range m.Properties {
		fmt.Fprintf(w, "  property %s=%q\n", p.Name, p.Value)
	}
	return nil
}
