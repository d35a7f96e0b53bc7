package report

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/dredding8/malibu-ui-private/inspect"
)

// RenderPageMap renders one page's landmark findings as the nested-bullet
// application map section. The line format is a contract for downstream
// tooling that parses the map:
//
//	- **VUE Dashboard** (`/`)
//	  - **Header**
//	    - **VUE Logo:** `MuiButtonBase`
func RenderPageMap(pm *inspect.PageMap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s- **%s** (`%s`)\n", indent(pm.Indent), pm.Title, pm.Path)
	for _, f := range pm.Findings {
		if f.Component == "" {
			fmt.Fprintf(&sb, "%s- **%s**\n", indent(f.Indent), f.Name)
			continue
		}
		fmt.Fprintf(&sb, "%s- **%s:** `%s`\n", indent(f.Indent), f.Name, f.Component)
	}
	return sb.String()
}

// RenderExcerpts converts captured landmark markup (tables, mostly) to a
// markdown appendix so reviewers can see the located contents without
// opening the snapshot. Conversion failures skip the excerpt rather than
// failing the report.
func RenderExcerpts(pm *inspect.PageMap) string {
	if len(pm.Excerpts) == 0 {
		return ""
	}

	conv := newMarkdownConverter()
	var sb strings.Builder
	for _, ex := range pm.Excerpts {
		md, err := conv.ConvertString(ex.HTML)
		if err != nil || strings.TrimSpace(md) == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n### %s (`%s`)\n\n%s\n", ex.Label, pm.Path, strings.TrimSpace(md))
	}
	if sb.Len() == 0 {
		return ""
	}
	return "\n## Table Contents\n" + sb.String()
}

func indent(n int) string {
	return strings.Repeat("  ", n)
}

// newMarkdownConverter creates a reusable, goroutine-safe Converter:
//
//   - base plugin: strips script, style, head and comments, which are noise for a map.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin: preserves table structure with minimal cell padding,
//     which keeps wide status tables readable in the report.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}
