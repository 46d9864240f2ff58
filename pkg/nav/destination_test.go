package nav

import "testing"

func TestSameLocationIgnoresArgumentsAndHistory(t *testing.T) {
	a := Destination{Path: "/detail", Arguments: map[string]any{"id": 1}}
	b := Destination{Path: "/detail", History: []Destination{{Path: "/home"}}}
	if !a.SameLocation(b) {
		t.Error("SameLocation() = false for equal paths")
	}
	if a.SameLocation(Destination{Path: "/other"}) {
		t.Error("SameLocation() = true for different paths")
	}
}

func TestFullStack(t *testing.T) {
	d := Destination{
		Path:    "/c",
		History: []Destination{{Path: "/a"}, {Path: "/b"}},
	}
	full := d.FullStack()
	want := []string{"/a", "/b", "/c"}
	if len(full) != len(want) {
		t.Fatalf("FullStack() len = %d, want %d", len(full), len(want))
	}
	for i, path := range want {
		if full[i].Path != path {
			t.Errorf("FullStack()[%d] = %q, want %q", i, full[i].Path, path)
		}
	}
}

func TestSamePaths(t *testing.T) {
	tests := []struct {
		name string
		a, b []Destination
		want bool
	}{
		{"both empty", nil, nil, true},
		{"equal", []Destination{{Path: "/a"}, {Path: "/b"}}, []Destination{{Path: "/a"}, {Path: "/b"}}, true},
		{"different length", []Destination{{Path: "/a"}}, []Destination{{Path: "/a"}, {Path: "/b"}}, false},
		{"different order", []Destination{{Path: "/a"}, {Path: "/b"}}, []Destination{{Path: "/b"}, {Path: "/a"}}, false},
		{
			"arguments ignored",
			[]Destination{{Path: "/a", Arguments: 1}},
			[]Destination{{Path: "/a", Arguments: 2}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samePaths(tt.a, tt.b); got != tt.want {
				t.Errorf("samePaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPageNameFromPath(t *testing.T) {
	page := NewPage(NewDestination("/profile", nil), "content")
	if page.Name != "/profile" {
		t.Errorf("Name = %q, want %q", page.Name, "/profile")
	}
}
