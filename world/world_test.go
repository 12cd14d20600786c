package world

import "testing"

func TestStaticMapBounds(t *testing.T) {
	m := NewStaticMap(4, 3, Tile{ID: 1, Walkable: true}, ThemeDesert)

	if _, ok := m.Tile(0, 0); !ok {
		t.Error("in-range tile reported not ok")
	}
	if _, ok := m.Tile(3, 2); !ok {
		t.Error("corner tile reported not ok")
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if _, ok := m.Tile(c[0], c[1]); ok {
			t.Errorf("out-of-range tile (%d,%d) reported ok", c[0], c[1])
		}
	}
	if m.Background() != ThemeDesert {
		t.Errorf("Background = %v, want Desert", m.Background())
	}
}

func TestStaticMapSet(t *testing.T) {
	m := NewStaticMap(2, 2, Tile{}, ThemeSky)
	m.Set(1, 1, Tile{ID: 7, Walkable: true})
	m.Set(5, 5, Tile{ID: 9}) // ignored

	got, ok := m.Tile(1, 1)
	if !ok || got.ID != 7 || !got.Walkable {
		t.Errorf("Tile(1,1) = %+v, %v", got, ok)
	}
}

func TestThemeString(t *testing.T) {
	tests := []struct {
		theme Theme
		want  string
	}{
		{ThemeSky, "Sky"},
		{ThemeCity, "City"},
		{ThemeSpace, "Space"},
		{ThemeDesert, "Desert"},
		{ThemeOcean, "Ocean"},
		{Theme(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.theme.String(); got != tt.want {
			t.Errorf("Theme(%d).String() = %q, want %q", tt.theme, got, tt.want)
		}
	}
}
