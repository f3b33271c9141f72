package app

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]royalty.Handler
}

var _ royalty.Registry = (*Router)(nil)
var _ royalty.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]royalty.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h royalty.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Paths returns all registered message paths in lexical order.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// route returns the registered Handler for the path of the transaction
// message. If no path is found, returns a notFoundHandler.
func (r *Router) route(tx royalty.Tx) (royalty.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "nil msg")
	}
	if h, ok := r.routes[msg.Path()]; ok {
		return h, nil
	}
	return notFoundHandler(msg.Path()), nil
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(royalty.Context, royalty.KVStore, royalty.Tx) (*royalty.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(royalty.Context, royalty.KVStore, royalty.Tx) (*royalty.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
