// Package routeinfo maps between engine destinations and the
// route-information shape hosting environments exchange (an address-bar
// style location plus opaque history state).
package routeinfo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/navstack-dev/navstack/pkg/nav"
)

// RouteInformation is the platform-facing description of a navigation
// state: a location string ("/path?query") and the history path list that
// should exist below it.
type RouteInformation struct {
	// Location is the path, optionally followed by a query string.
	Location string `json:"location"`

	// State is the ordered list of predecessor paths, root first.
	State []string `json:"state,omitempty"`
}

// FromDestination converts a destination into route information. Map-shaped
// string arguments become query parameters; history becomes State.
func FromDestination(dest nav.Destination) RouteInformation {
	location := dest.Path
	if args, ok := dest.Arguments.(map[string]string); ok && len(args) > 0 {
		values := url.Values{}
		for k, v := range args {
			values.Set(k, v)
		}
		location = dest.Path + "?" + values.Encode()
	}

	var state []string
	for _, h := range dest.History {
		state = append(state, h.Path)
	}
	return RouteInformation{Location: location, State: state}
}

// ToDestination converts route information into a destination. The location
// is canonicalized; query parameters become a map[string]string Arguments
// value; State becomes History.
func ToDestination(ri RouteInformation) (nav.Destination, error) {
	path, query, _, err := Canonicalize(ri.Location)
	if err != nil {
		return nav.Destination{}, fmt.Errorf("routeinfo: invalid location %q: %w", ri.Location, err)
	}

	var arguments any
	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nav.Destination{}, fmt.Errorf("routeinfo: invalid query %q: %w", query, err)
		}
		args := make(map[string]string, len(values))
		for k := range values {
			args[k] = values.Get(k)
		}
		arguments = args
	}

	var history []nav.Destination
	for _, p := range ri.State {
		canon, _, _, err := Canonicalize(p)
		if err != nil {
			return nav.Destination{}, fmt.Errorf("routeinfo: invalid history path %q: %w", p, err)
		}
		history = append(history, nav.Destination{Path: canon})
	}

	return nav.Destination{Path: path, Arguments: arguments, History: history}, nil
}

// Canonicalize normalizes a location path.
//
// Rules: an empty path becomes "/"; the query string is split off;
// backslashes and null bytes are rejected; a leading slash is ensured;
// duplicate slashes collapse; a trailing slash is stripped except at the
// root. changed reports whether the path portion was rewritten.
func Canonicalize(path string) (canonPath, query string, changed bool, err error) {
	if path == "" {
		return "/", "", true, nil
	}

	canonPath, query, _ = strings.Cut(path, "?")

	// SECURITY: Reject backslash and null
	if strings.Contains(canonPath, "\\") {
		return "", "", false, errors.New("path contains backslash")
	}
	if strings.Contains(canonPath, "\x00") {
		return "", "", false, errors.New("path contains null byte")
	}

	original := canonPath

	if !strings.HasPrefix(canonPath, "/") {
		canonPath = "/" + canonPath
	}

	for strings.Contains(canonPath, "//") {
		canonPath = strings.ReplaceAll(canonPath, "//", "/")
	}

	if len(canonPath) > 1 && strings.HasSuffix(canonPath, "/") {
		canonPath = strings.TrimSuffix(canonPath, "/")
	}

	return canonPath, query, canonPath != original, nil
}
