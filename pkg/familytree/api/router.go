package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RouteName identifies a registered route for reverse URL lookup.
type RouteName string

const (
	RouteCreatePerson RouteName = "create-person"
	RoutePerson       RouteName = "person"
	RouteCreateEvent  RouteName = "create-event"
	RouteEvent        RouteName = "event"
)

// routeSegment is either a literal piece of a pattern or a placeholder.
type routeSegment struct {
	literal string
	param   string
}

type route struct {
	pattern  string
	segments []routeSegment
	params   int
}

// Router maps URL patterns to handlers and reverses named routes into
// absolute URLs.
type Router struct {
	mux    *chi.Mux
	routes map[RouteName]*route
}

// NewRouter creates a router. Middleware must be supplied here because chi
// rejects Use after the first route is mounted.
func NewRouter(middlewares ...Middleware) *Router {
	mux := chi.NewRouter()
	for _, m := range middlewares {
		mux.Use(m)
	}
	return &Router{
		mux:    mux,
		routes: make(map[RouteName]*route),
	}
}

// Handle registers handlers for a named pattern, keyed by HTTP method.
// The pattern uses chi syntax and may constrain a placeholder with a regexp,
// e.g. "/person/{id:[a-f0-9]+}".
func (rt *Router) Handle(name RouteName, pattern string, handlers map[string]http.HandlerFunc) {
	segments, err := parsePattern(pattern)
	if err != nil {
		panic(fmt.Sprintf("api: route %s: %v", name, err))
	}
	if _, exists := rt.routes[name]; exists {
		panic(fmt.Sprintf("api: route %s registered twice", name))
	}

	r := &route{pattern: pattern, segments: segments}
	for _, s := range segments {
		if s.param != "" {
			r.params++
		}
	}
	rt.routes[name] = r

	for method, h := range handlers {
		rt.mux.Method(method, pattern, h)
	}
}

// Get registers an unnamed GET route.
func (rt *Router) Get(pattern string, h http.HandlerFunc) {
	rt.mux.Get(pattern, h)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

// Reverse substitutes args positionally into the named route's pattern and
// returns the resulting path. It reports false when no route is registered
// under name or the number of args does not match.
func (rt *Router) Reverse(name RouteName, args ...string) (string, bool) {
	r, ok := rt.routes[name]
	if !ok || len(args) != r.params {
		return "", false
	}

	var b strings.Builder
	i := 0
	for _, s := range r.segments {
		if s.param == "" {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(url.PathEscape(args[i]))
		i++
	}
	return b.String(), true
}

// URLFor reverses the named route and resolves it to an absolute URL against
// the authority of req.
func (rt *Router) URLFor(req *http.Request, name RouteName, args ...string) (string, bool) {
	path, ok := rt.Reverse(name, args...)
	if !ok {
		return "", false
	}
	return resolveURL(req, path)
}

// resolveURL joins ref onto the full URL of req.
func resolveURL(req *http.Request, ref string) (string, bool) {
	base, err := url.Parse(fullURL(req))
	if err != nil {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// fullURL returns the absolute URL the client used for req.
func fullURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + req.Host + req.URL.RequestURI()
}

// parsePattern splits a chi pattern into literals and placeholders. Braces
// nested inside a placeholder's regexp are balanced.
func parsePattern(pattern string) ([]routeSegment, error) {
	var segments []routeSegment
	for len(pattern) > 0 {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			segments = append(segments, routeSegment{literal: pattern})
			break
		}
		if start > 0 {
			segments = append(segments, routeSegment{literal: pattern[:start]})
		}

		depth, end := 0, -1
		for i := start; i < len(pattern); i++ {
			switch pattern[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				end = i
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("unbalanced braces in %q", pattern)
		}

		name := pattern[start+1 : end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		if name == "" {
			return nil, fmt.Errorf("empty placeholder in %q", pattern)
		}
		segments = append(segments, routeSegment{param: name})
		pattern = pattern[end+1:]
	}
	return segments, nil
}
