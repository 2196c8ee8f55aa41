// Command tmxprint renders a tile map and prints it on the terminal.
//
//	tmxprint -map town.tmx -layer Collision -mode 256
package main

import (
	"flag"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-tmx/compositor"
	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/paths"
	"badc0de.net/pkg/go-tmx/tmx"
)

var (
	layer    = flag.String("layer", "", "only render the layer with this name; by default every layer except "+compositor.CollisionLayer)
	mode     = flag.String("mode", "24bit", "how to print: 24bit, 256, none, iterm or rasterm")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink the render to fit the terminal")
	dataURL  = flag.Bool("dataurl", false, "print the render as a png data url instead of drawing it")
	pngOut   = flag.String("png", "", "also write the full-size render to this png file")

	mapPath string
)

func main() {
	paths.SetupFilePathFlag("map.tmx", "map", &mapPath)
	paths.SetupSearchPathFlag("search_path")
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() > 0 {
		mapPath = flag.Arg(0)
	}
	if mapPath == "" {
		glog.Exit("no map given; pass -map or a path argument")
	}

	m, err := tmx.Open(mapPath, true, imagecache.New(imagecache.DefaultCapacity))
	if err != nil {
		glog.Exitf("loading map: %v", err)
	}
	img, err := compositor.CompositeMap(m, *layer)
	if err != nil {
		glog.Exitf("rendering map: %v", err)
	}

	if *pngOut != "" {
		if err := writePNG(*pngOut, img); err != nil {
			glog.Exitf("writing png: %v", err)
		}
	}

	if err := out(os.Stdout, img); err != nil {
		glog.Exit(err)
	}
}
