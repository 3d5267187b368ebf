package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/tendant/family-tree/pkg/familytree"
)

var supportedMediaTypes = map[string]bool{
	"application/json": true,
}

// Action describes a state transition available on a representation. The
// URL is produced by reversing Route with Args.
type Action struct {
	Name   string
	Method string
	Route  RouteName
	Args   []string
}

// actionCard is the wire form of an Action.
type actionCard struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// exchange holds the state of a single request/response pair: the decoded
// request body is parsed once and reused.
type exchange struct {
	w          http.ResponseWriter
	r          *http.Request
	router     *Router
	handler    string
	mediaTypes map[string]bool

	parsed  bool
	body    familytree.Dictionary
	bodyErr error
}

func newExchange(w http.ResponseWriter, r *http.Request, router *Router, handler string) *exchange {
	return &exchange{
		w:          w,
		r:          r,
		router:     router,
		handler:    handler,
		mediaTypes: supportedMediaTypes,
	}
}

// urlFor reverses a route against the current request.
func (x *exchange) urlFor(name RouteName, args ...string) (string, error) {
	u, ok := x.router.URLFor(x.r, name, args...)
	if !ok {
		return "", &HTTPError{
			Status:     http.StatusInternalServerError,
			Reason:     http.StatusText(http.StatusInternalServerError),
			LogMessage: fmt.Sprintf("no URL for route %s with args %v in %s", name, args, x.handler),
		}
	}
	return u, nil
}

// requireRequestBody fails with 400 unless the request announces a body
// length in Content-Length and carries a body. Chunked requests have no
// announced length and are rejected. It returns the raw body.
func (x *exchange) requireRequestBody() ([]byte, error) {
	if x.r.ContentLength <= 0 || x.r.Body == nil {
		return nil, NewHTTPError(http.StatusBadRequest, errors.New("request body with Content-Length is required"))
	}
	data, err := io.ReadAll(x.r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, NewHTTPError(http.StatusRequestEntityTooLarge, err)
		}
		return nil, NewHTTPError(http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
	}
	if len(data) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, errors.New("request body is empty"))
	}
	return data, nil
}

// RequestBody returns the decoded request body.
//
//   - 400 if the body is missing or cannot be decoded
//   - 415 if the content type is unsupported
//   - 500 if no decoder is available for a supported content type
func (x *exchange) RequestBody() (familytree.Dictionary, error) {
	if x.parsed {
		return x.body, x.bodyErr
	}
	x.body, x.bodyErr = x.parseRequestBody()
	x.parsed = true
	return x.body, x.bodyErr
}

func (x *exchange) parseRequestBody() (familytree.Dictionary, error) {
	data, err := x.requireRequestBody()
	if err != nil {
		return nil, err
	}

	contentType := x.r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !x.mediaTypes[mediaType] {
		return nil, NewHTTPError(http.StatusUnsupportedMediaType, fmt.Errorf("unsupported content type %q", contentType))
	}

	if !strings.HasPrefix(mediaType, "application/json") {
		return nil, &HTTPError{
			Status:     http.StatusInternalServerError,
			Reason:     "Unimplemented Content Type",
			LogMessage: fmt.Sprintf("%s is not implemented in %s.RequestBody", mediaType, x.handler),
		}
	}

	var body familytree.Dictionary
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, fmt.Errorf("decode JSON body: %w", err))
	}
	if body == nil {
		body = familytree.Dictionary{}
	}
	return body, nil
}

// deserializeModel builds an instance of t from the request body. Errors
// raised by the model itself are returned unchanged.
func deserializeModel[M familytree.Model](x *exchange, t familytree.ModelType[M]) (M, error) {
	var zero M
	body, err := x.RequestBody()
	if err != nil {
		return zero, err
	}
	return t.FromDictionary(body)
}

type serializeConfig struct {
	selfRoute RouteName
	actions   []Action
}

type serializeOption func(*serializeConfig)

// withSelf adds a self link, and a Location header, for the model's
// canonical URL reversed from route.
func withSelf(route RouteName) serializeOption {
	return func(c *serializeConfig) {
		c.selfRoute = route
	}
}

// withActions adds an action card. Actions keep the order they are given in.
func withActions(actions ...Action) serializeOption {
	return func(c *serializeConfig) {
		c.actions = append(c.actions, actions...)
	}
}

// representation renders model with its hypermedia links. Every URL is
// resolved before anything is written so a failure leaves the response
// untouched.
func (x *exchange) representation(model familytree.Model, opts ...serializeOption) (familytree.Dictionary, string, error) {
	var cfg serializeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rep := model.ToDictionary()

	var location string
	if cfg.selfRoute != "" {
		u, err := x.urlFor(cfg.selfRoute, model.Identifier())
		if err != nil {
			return nil, "", err
		}
		rep["self"] = u
		location = u
	}

	if len(cfg.actions) > 0 {
		cards := make(map[string]actionCard, len(cfg.actions))
		for _, action := range cfg.actions {
			u, err := x.urlFor(action.Route, action.Args...)
			if err != nil {
				return nil, "", err
			}
			cards[action.Name] = actionCard{Method: action.Method, URL: u}
		}
		rep["actions"] = cards
	}
	return rep, location, nil
}

// serializeModel writes model as the JSON response with the given status.
func (x *exchange) serializeModel(model familytree.Model, status int, opts ...serializeOption) error {
	rep, location, err := x.representation(model, opts...)
	if err != nil {
		return err
	}
	if location != "" {
		x.w.Header().Set("Location", location)
	}
	render.Status(x.r, status)
	render.JSON(x.w, x.r, rep)
	return nil
}

func (x *exchange) writeError(err error) {
	writeError(x.w, x.r, err)
}
