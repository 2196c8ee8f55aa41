// Command tmxweb serves rendered tile maps over HTTP.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/go-tmx/config"
	"badc0de.net/pkg/go-tmx/imagecache"
	"badc0de.net/pkg/go-tmx/paths"
	"badc0de.net/pkg/go-tmx/web"
)

var (
	configPath     = flag.String("config", "", "path to a yaml configuration file")
	listenAddress  = flag.String("listen_address", "", "http listen address; overrides the configuration file")
	mapDirs        = flag.String("map_dirs", "", "directories holding maps, separated like $PATH; overrides the configuration file")
	cacheCapacity  = flag.Int("cache_capacity", 0, "number of decoded tileset images to keep; overrides the configuration file")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")
)

// loadConfig reads -config, if set, and applies the flags the user passed.
func loadConfig() (*config.Config, error) {
	c := config.Default()
	if *configPath != "" {
		var err error
		if c, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen_address":
			c.ListenAddress = *listenAddress
		case "map_dirs":
			c.MapDirs = filepath.SplitList(*mapDirs)
		case "cache_capacity":
			c.CacheCapacity = *cacheCapacity
		}
	})
	return c, c.Validate()
}

func main() {
	flagutil.Parse()

	c, err := loadConfig()
	if err != nil {
		glog.Exitf("configuration: %v", err)
	}

	fmt.Fprintln(os.Stderr, figure.NewFigure("tmxweb", "", true).String())

	if *debugWebServer != "" {
		glog.Infof("debug server on %s", *debugWebServer)
		go http.ListenAndServe(*debugWebServer, nil)
	}

	cache := imagecache.New(c.CacheCapacity)
	h := web.NewHandler(&paths.Finder{Dirs: c.MapDirs}, cache, c.MaxRenderPx)

	r := mux.NewRouter()
	h.RegisterRoutes(r)

	glog.Infof("serving maps from %v on %s", c.MapDirs, c.ListenAddress)
	glog.Fatal(http.ListenAndServe(c.ListenAddress, handlers.LoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
