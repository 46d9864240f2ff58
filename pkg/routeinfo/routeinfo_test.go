package routeinfo

import (
	"testing"

	"github.com/navstack-dev/navstack/pkg/nav"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in          string
		wantPath    string
		wantQuery   string
		wantChanged bool
		wantErr     bool
	}{
		{in: "", wantPath: "/", wantChanged: true},
		{in: "/", wantPath: "/"},
		{in: "/users", wantPath: "/users"},
		{in: "users", wantPath: "/users", wantChanged: true},
		{in: "/users/", wantPath: "/users", wantChanged: true},
		{in: "//users///42", wantPath: "/users/42", wantChanged: true},
		{in: "/search?q=go", wantPath: "/search", wantQuery: "q=go"},
		{in: "/a\\b", wantErr: true},
		{in: "/a\x00b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, query, changed, err := Canonicalize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Canonicalize(%q) = %q, want error", tt.in, path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.in, err)
			}
			if path != tt.wantPath || query != tt.wantQuery || changed != tt.wantChanged {
				t.Errorf("Canonicalize(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, path, query, changed, tt.wantPath, tt.wantQuery, tt.wantChanged)
			}
		})
	}
}

func TestToDestination(t *testing.T) {
	ri := RouteInformation{
		Location: "/profile?tab=posts",
		State:    []string{"/home", "/settings/"},
	}
	dest, err := ToDestination(ri)
	if err != nil {
		t.Fatalf("ToDestination() error: %v", err)
	}
	if dest.Path != "/profile" {
		t.Errorf("Path = %q, want %q", dest.Path, "/profile")
	}
	args, ok := dest.Arguments.(map[string]string)
	if !ok || args["tab"] != "posts" {
		t.Errorf("Arguments = %v, want map with tab=posts", dest.Arguments)
	}
	if len(dest.History) != 2 || dest.History[0].Path != "/home" || dest.History[1].Path != "/settings" {
		t.Errorf("History = %v, want [/home /settings]", dest.History)
	}
}

func TestFromDestination(t *testing.T) {
	dest := nav.Destination{
		Path:      "/profile",
		Arguments: map[string]string{"tab": "posts"},
		History:   []nav.Destination{{Path: "/home"}},
	}
	ri := FromDestination(dest)
	if ri.Location != "/profile?tab=posts" {
		t.Errorf("Location = %q, want %q", ri.Location, "/profile?tab=posts")
	}
	if len(ri.State) != 1 || ri.State[0] != "/home" {
		t.Errorf("State = %v, want [/home]", ri.State)
	}
}

func TestRouteInformationRoundTrip(t *testing.T) {
	dest := nav.Destination{
		Path:      "/detail",
		Arguments: map[string]string{"id": "42"},
		History:   []nav.Destination{{Path: "/home"}, {Path: "/list"}},
	}
	back, err := ToDestination(FromDestination(dest))
	if err != nil {
		t.Fatalf("round trip error: %v", err)
	}
	if back.Path != dest.Path {
		t.Errorf("Path = %q, want %q", back.Path, dest.Path)
	}
	args, _ := back.Arguments.(map[string]string)
	if args["id"] != "42" {
		t.Errorf("Arguments = %v, want id=42", back.Arguments)
	}
	if len(back.History) != 2 {
		t.Errorf("History len = %d, want 2", len(back.History))
	}
}

func TestToDestinationRejectsBadLocation(t *testing.T) {
	if _, err := ToDestination(RouteInformation{Location: "/a\\b"}); err == nil {
		t.Error("ToDestination() accepted a backslash location")
	}
}
