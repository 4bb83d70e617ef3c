package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lumiso Studio", "lumiso-studio"},
		{"  Padded  Name  ", "padded-name"},
		{"Ayşe & Co. Photo", "aye-co-photo"},
		{"--already-slugged--", "already-slugged"},
		{"Işık & Co.", "ik-co"},
		{"--Lots   of--- ", "lots-of"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
