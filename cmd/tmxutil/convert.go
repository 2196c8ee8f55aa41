package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/google/subcommands"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"badc0de.net/pkg/go-tmx/tmx"
)

type convertCmd struct {
	compress  bool
	outputDir string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "rewrite maps with or without gzip-compressed layers" }
func (c *convertCmd) Usage() string {
	return "tmxutil convert [-compress=false] [-o <dir>] <map.tmx>...\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.compress, "compress", true, "gzip-compress layer payloads")
	f.StringVar(&c.outputDir, "o", "", "output directory; maps are rewritten in place if empty")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			glog.Error(err)
			return subcommands.ExitFailure
		}
	}

	bar := progressbar.New(f.NArg())
	failed := 0
	for _, path := range f.Args() {
		if err := c.convert(path); err != nil {
			glog.Errorf("converting %q: %v", path, err)
			failed++
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if failed > 0 {
		glog.Errorf("%d of %d maps failed", failed, f.NArg())
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *convertCmd) convert(path string) error {
	m, err := tmx.Open(path, false, nil)
	if err != nil {
		return err
	}
	out := path
	if c.outputDir != "" {
		out = filepath.Join(c.outputDir, filepath.Base(path))
	}
	// Written beside the target, then renamed over it.
	tmp := out + ".tmp"
	if err := m.Save(tmp, c.compress); err != nil {
		os.Remove(tmp)
		return err
	}
	return errors.Wrap(os.Rename(tmp, out), "replacing map")
}
