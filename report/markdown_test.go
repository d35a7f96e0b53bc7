package report

import (
	"strings"
	"testing"

	"github.com/dredding8/malibu-ui-private/inspect"
	"github.com/dredding8/malibu-ui-private/models"
)

func TestRenderPageMap_LineFormat(t *testing.T) {
	pm := &inspect.PageMap{
		Title:  "VUE Dashboard",
		Path:   "/",
		Indent: 0,
		Findings: []models.Finding{
			{Name: "Header", Indent: 1},
			{Name: "VUE Logo", Component: "MuiButtonBase", Indent: 2},
			{Name: "Logout Button", Component: "Unknown", Indent: 2},
		},
	}

	got := RenderPageMap(pm)
	want := "- **VUE Dashboard** (`/`)\n" +
		"  - **Header**\n" +
		"    - **VUE Logo:** `MuiButtonBase`\n" +
		"    - **Logout Button:** `Unknown`\n"
	if got != want {
		t.Errorf("RenderPageMap =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderPageMap_NestedPageIndent(t *testing.T) {
	pm := &inspect.PageMap{
		Title:  "History Page",
		Path:   "/history",
		Indent: 1,
		Findings: []models.Finding{
			{Name: "Reset Button", Component: "MuiButton", Indent: 2},
		},
	}

	got := RenderPageMap(pm)
	if !strings.HasPrefix(got, "  - **History Page** (`/history`)\n") {
		t.Errorf("nested page should indent its title line:\n%q", got)
	}
}

func TestRenderExcerpts_TableToMarkdown(t *testing.T) {
	pm := &inspect.PageMap{
		Path: "/history",
		Excerpts: []inspect.Excerpt{
			{Label: "Ready to Continue Table", HTML: `<table>
				<thead><tr><th>Deck Name</th><th>Progress</th></tr></thead>
				<tbody><tr><td>alpha</td><td>50%</td></tr></tbody>
			</table>`},
		},
	}

	got := RenderExcerpts(pm)
	if !strings.Contains(got, "## Table Contents") {
		t.Error("excerpt appendix should carry the Table Contents heading")
	}
	if !strings.Contains(got, "### Ready to Continue Table (`/history`)") {
		t.Errorf("excerpt heading missing:\n%s", got)
	}
	if !strings.Contains(got, "Deck Name") || !strings.Contains(got, "alpha") {
		t.Errorf("converted table should carry headers and cells:\n%s", got)
	}
	if strings.Contains(got, "<table>") {
		t.Error("excerpt should be markdown, not raw markup")
	}
}

func TestRenderExcerpts_Empty(t *testing.T) {
	pm := &inspect.PageMap{Path: "/"}
	if got := RenderExcerpts(pm); got != "" {
		t.Errorf("no excerpts should render nothing, got %q", got)
	}
}

func TestRenderExcerpts_UnconvertibleSkipped(t *testing.T) {
	pm := &inspect.PageMap{
		Path: "/",
		Excerpts: []inspect.Excerpt{
			{Label: "Empty", HTML: "   "},
		},
	}
	if got := RenderExcerpts(pm); got != "" {
		t.Errorf("blank excerpt should be skipped entirely, got %q", got)
	}
}
