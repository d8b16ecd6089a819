// Command atlasweb serves a .atlas file for preview in a browser.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lambdaxymox/tex-atlas/atlas"
	"github.com/lambdaxymox/tex-atlas/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for atlasweb")
	atlasPath     = flag.String("atlas", "", ".atlas file to serve")
)

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *atlasPath == "" {
		glog.Exitf("-atlas is required")
	}
	a, err := atlas.LoadFile(*atlasPath)
	if err != nil {
		glog.Exitf("%v", err)
	}
	w, h := a.Dimensions()
	glog.Infof("serving %q (%dx%d, %d frames) on %s", *atlasPath, w, h, a.FrameCount(), *listenAddress)

	r := mux.NewRouter()
	web.NewHandler(a).Register(r)

	glog.Exit(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, r)))
}
