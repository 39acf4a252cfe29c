package render

import (
	"slices"
	"testing"

	"github.com/sudo-self/sudollama/internal/config"
)

func TestAvailableTUIThemes(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == "" || theme.Description == "" {
			t.Errorf("theme %+v missing name or description", theme)
		}
		if theme.Primary == "" || theme.Secondary == "" || theme.Error == "" || theme.Text == "" {
			t.Errorf("theme %s missing colors", theme.Name)
		}
		if theme.Primary == theme.Error {
			t.Errorf("theme %s uses the same color for replies and errors", theme.Name)
		}
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("classic") {
		t.Fatal("SetTUITheme(classic) returned false")
	}
	if GetTUITheme().Name != "classic" {
		t.Errorf("GetTUITheme() = %s, want classic", GetTUITheme().Name)
	}

	if SetTUITheme("nope") {
		t.Error("SetTUITheme(nope) returned true")
	}
	if GetTUITheme().Name != "classic" {
		t.Error("unknown theme changed the active theme")
	}
}

func TestTUIThemeNames(t *testing.T) {
	names := TUIThemeNames()
	if len(names) != len(AvailableTUIThemes()) {
		t.Fatalf("TUIThemeNames() = %v", names)
	}
	for _, name := range names {
		if _, ok := GetTUIThemeByName(name); !ok {
			t.Errorf("GetTUIThemeByName(%q) not found", name)
		}
	}
}

func TestTUIThemeNames_MatchConfig(t *testing.T) {
	if !slices.Equal(TUIThemeNames(), config.TUIThemes) {
		t.Errorf("TUIThemeNames() = %v, config accepts %v", TUIThemeNames(), config.TUIThemes)
	}
	if _, ok := GetTUIThemeByName(config.DefaultConfig().TUITheme); !ok {
		t.Errorf("default theme %q is not available", config.DefaultConfig().TUITheme)
	}
}
