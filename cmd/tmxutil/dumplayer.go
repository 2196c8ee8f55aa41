package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"

	"badc0de.net/pkg/go-tmx/tmx"
)

type dumpLayerCmd struct {
	layer string
}

func (c *dumpLayerCmd) Name() string     { return "dumplayer" }
func (c *dumpLayerCmd) Synopsis() string { return "print a layer's global IDs as tab separated text" }
func (c *dumpLayerCmd) Usage() string {
	return "tmxutil dumplayer -layer <name> <map.tmx>\n"
}
func (c *dumpLayerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layer, "layer", "", "name of the layer to dump")
}

func (c *dumpLayerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 || c.layer == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	m, err := tmx.Open(f.Arg(0), false, nil)
	if err != nil {
		glog.Error(err)
		return subcommands.ExitFailure
	}
	l, ok := m.Layer(c.layer)
	if !ok {
		glog.Errorf("map %q has no layer %q", f.Arg(0), c.layer)
		return subcommands.ExitFailure
	}
	if err := l.WriteText(os.Stdout); err != nil {
		glog.Error(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
