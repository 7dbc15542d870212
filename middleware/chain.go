// ABOUTME: Middleware composition for the route table
// ABOUTME: Wraps a handler so the first listed middleware runs first

package middleware

import "net/http"

// Chain wraps h in the given middleware, outermost first: the first entry
// sees the request before any other, and h runs last.
func Chain(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
