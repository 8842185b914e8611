package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/wilson1070033/webserver/server"
	"github.com/wilson1070033/webserver/server/protocol"
	"github.com/wilson1070033/webserver/server/router"
	"github.com/wilson1070033/webserver/server/static"
)

var (
	port   = flag.String("port", "8080", "port number")
	public = flag.String("public", "public", "directory with static files")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	srv := server.New(server.Config{Addr: ":" + *port}, log)

	srv.Route("/", router.HandlerFunc(func(req *protocol.Request, res *protocol.Response) {
		res.SetContent([]byte("<html><body><h1>Hello, World!</h1><p>Welcome to my web server</p></body></html>"), "text/html")
	}))
	srv.Route("/api/data", router.HandlerFunc(func(req *protocol.Request, res *protocol.Response) {
		res.SetContent([]byte(`{"message": "This is JSON data"}`), "application/json")
	}))
	srv.Route("/index.html", static.File(filepath.Join(*public, "index.html")))

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
