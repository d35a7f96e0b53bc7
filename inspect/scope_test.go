package inspect

import (
	"strings"
	"testing"
)

func TestScope_NarrowsToRegion(t *testing.T) {
	raw := `<html><body>
		<header><a data-testid="logoButton">logo</a></header>
		<div class="MuiGrid2-grid-xs-12"><button data-testid="addSccButton">ADD</button></div>
	</body></html>`

	got, err := Scope(raw, "header")
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if !strings.Contains(got, "logoButton") {
		t.Error("scoped region should contain the header landmark")
	}
	if strings.Contains(got, "addSccButton") {
		t.Error("scoped region should not contain content outside the region")
	}
}

func TestScope_ClassSelector(t *testing.T) {
	raw := `<div class="MuiGrid2-grid-xs-12"><input id="sccSearchBar"></div><div>other</div>`

	got, err := Scope(raw, "div.MuiGrid2-grid-xs-12")
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if !strings.Contains(got, "sccSearchBar") {
		t.Error("scoped region should contain the search bar")
	}
}

func TestScope_MissingRegionFallsBackToFullInput(t *testing.T) {
	raw := `<div><button>x</button></div>`

	got, err := Scope(raw, "header")
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if got != raw {
		t.Errorf("missing region should return input unchanged, got %q", got)
	}
}

func TestScope_InvalidSelector(t *testing.T) {
	if _, err := Scope("<div></div>", "[["); err == nil {
		t.Error("Scope should fail on an unparsable selector")
	}
}
