package slugs

import "testing"

func TestField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Freya", "freya"},
		{"Dark Mode", "dark-mode"},
		{"My Awesome Project", "my-awesome-project"},
		{"UPPER CASE", "upper-case"},
		{"snake_case", "snake-case"},
		{"test.md", "test"},
		{"already-slugged", "already-slugged"},
		{"Special: Characters!", "special-characters"},
		{"2024 Roadmap", "roadmap"},
		{"v2 Launch", "v2-launch"},
		{"42", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Field(tt.in)
			if got != tt.want {
				t.Fatalf("Field(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got != "" && !IsField(got) {
				t.Fatalf("Field(%q) = %q does not satisfy the field grammar", tt.in, got)
			}
		})
	}
}

func TestIsField(t *testing.T) {
	tests := map[string]bool{
		"forkcast":  true,
		"dark-mode": true,
		"v2":        true,
		"2v":        false,
		"Dark":      false,
		"":          false,
		"a_b":       false,
	}
	for in, want := range tests {
		if got := IsField(in); got != want {
			t.Errorf("IsField(%q) = %v, want %v", in, got, want)
		}
	}
}
