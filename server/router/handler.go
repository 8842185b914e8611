package router

import "github.com/wilson1070033/webserver/server/protocol"

// Handler is the capability bound to a path: inspect the request,
// mutate the response
type Handler interface {
	Handle(req *protocol.Request, res *protocol.Response)
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(*protocol.Request, *protocol.Response)

func (f HandlerFunc) Handle(req *protocol.Request, res *protocol.Response) {
	f(req, res)
}
