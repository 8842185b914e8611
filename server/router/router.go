// exact-path route table, no prefix or parameter matching and
// trailing slashes are significant
package router

type HTTPRouter struct {
	routes map[string]Handler
}

// init a new router
func NewHTTPRouter() *HTTPRouter {
	return &HTTPRouter{
		routes: make(map[string]Handler),
	}
}

// Route binds a handler to an exact path, overwriting any previous
// binding. Registration happens at startup only; the table is not
// locked because it is read-only once the accept loop starts.
func (r *HTTPRouter) Route(path string, h Handler) {
	r.routes[path] = h
}

// Serve returns the handler registered for exactly this path
func (r *HTTPRouter) Serve(path string) (Handler, bool) {
	h, ok := r.routes[path]
	return h, ok
}
