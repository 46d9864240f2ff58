// Package routes loads the YAML routes manifest and turns it into page
// builders for the navigation engine.
//
// The manifest declares the routes the server can resolve:
//
//	routes:
//	  - path: /
//	    title: Home
//	  - path: /products/:id
//	    title: Product
//	  - path: /docs
//	    title: Docs
//	    prefix: true
//	    data:
//	      perPage: 20
//
// Segments starting with ':' capture one path segment as a named parameter;
// a final '*rest' segment captures the remainder. Captured parameters are
// exposed on the page content.
package routes

import (
	"context"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/navstack-dev/navstack/internal/errors"
	"github.com/navstack-dev/navstack/pkg/nav"
)

// Manifest is the top-level structure of a routes manifest file.
type Manifest struct {
	Routes []Route `yaml:"routes"`
}

// Route declares a single resolvable route.
type Route struct {
	// Path is the route path, possibly with ':' and '*' capture segments.
	// With Prefix set, a static path matches any destination under it;
	// otherwise the match is exact.
	Path string `yaml:"path"`

	// Title is a human-readable name carried into the page content.
	Title string `yaml:"title"`

	// Prefix switches the route from exact to prefix matching.
	Prefix bool `yaml:"prefix"`

	// Data is arbitrary static content attached to every page this route
	// builds.
	Data map[string]any `yaml:"data"`
}

// Content is the page content produced for manifest routes.
type Content struct {
	// Title comes from the route declaration.
	Title string

	// Data comes from the route declaration.
	Data map[string]any

	// Params are the path parameters captured by ':' and '*' segments.
	Params map[string]string

	// Arguments are the destination arguments the page was built with.
	Arguments any
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No routes manifest found at " + path).
				WithSuggestion(`Create one or point "routes" in navstack.json at it`)
		}
		return nil, errors.New("E120").Wrap(err)
	}
	return Parse(data)
}

// Parse parses and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse routes manifest: " + err.Error()).
			WithSuggestion("Check that the manifest is valid YAML")
	}
	if len(m.Routes) == 0 {
		return nil, errors.New("E122").
			WithSuggestion(`Declare at least one route under "routes:"`)
	}
	for _, r := range m.Routes {
		if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
			return nil, errors.New("E123").
				WithDetail("Route path " + strconv.Quote(r.Path) + " must start with '/'")
		}
	}
	return &m, nil
}

// Builders converts the manifest into an ordered builder list. Manifest
// order is preserved, so earlier routes win ties the same way earlier
// builders do.
func (m *Manifest) Builders() []nav.PageBuilder {
	builders := make([]nav.PageBuilder, 0, len(m.Routes))
	for _, r := range m.Routes {
		builders = append(builders, routeBuilder{
			route:   r,
			pattern: compilePattern(r.Path),
		})
	}
	return builders
}

// routeBuilder builds pages for one manifest route.
type routeBuilder struct {
	route   Route
	pattern pattern
}

// SupportsRoute implements nav.PageBuilder.
func (b routeBuilder) SupportsRoute(dest nav.Destination) bool {
	if b.pattern.hasParams {
		_, ok := b.pattern.match(dest.Path)
		return ok
	}
	if b.route.Prefix {
		return dest.Path == b.route.Path ||
			strings.HasPrefix(dest.Path, strings.TrimSuffix(b.route.Path, "/")+"/")
	}
	return dest.Path == b.route.Path
}

// BuildPage implements nav.PageBuilder.
func (b routeBuilder) BuildPage(_ context.Context, dest nav.Destination) (*nav.Page, error) {
	var params map[string]string
	if b.pattern.hasParams {
		params, _ = b.pattern.match(dest.Path)
	}
	return nav.NewPage(dest, &Content{
		Title:     b.route.Title,
		Data:      b.route.Data,
		Params:    params,
		Arguments: dest.Arguments,
	}), nil
}
