// Command tmxutil inspects and rewrites tile map documents.
package main

import (
	"context"
	"flag"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&infoCmd{}, "")
	subcommands.Register(&convertCmd{}, "")
	subcommands.Register(&dumpLayerCmd{}, "")
	subcommands.Register(&renderCmd{}, "")

	flagutil.Parse()
	flag.Set("logtostderr", "true")
	os.Exit(int(subcommands.Execute(context.Background())))
}
