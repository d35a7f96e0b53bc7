package inspect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dredding8/malibu-ui-private/models"
)

// Entry is one planned landmark lookup within a page section.
type Entry struct {
	// Label is the landmark's display name in the application map.
	Label string

	// Loc finds the landmark. Ignored when AfterHeading is set.
	Loc Locator

	// Repeat emits one finding per match, labeled by element text,
	// preceded by GroupLabel (navigation tabs).
	Repeat     bool
	GroupLabel string

	// AfterHeading locates the first table following the named <h6>.
	AfterHeading string

	// Excerpt carries the landmark's outer HTML into the report so a
	// table's contents can be rendered alongside its classification.
	Excerpt bool
}

// Section groups entries under a named region of the page. Region is a CSS
// selector narrowing the lookup scope; an empty Name emits no section line.
type Section struct {
	Name    string
	Region  string
	Entries []Entry
}

// PagePlan is the fixed landmark plan for one page of the audited app.
type PagePlan struct {
	Title  string
	Path   string
	Indent int
	Sections []Section
}

// PageMap is the outcome of applying a PagePlan to a snapshot.
type PageMap struct {
	Title  string
	Path   string
	Indent int

	// Findings keep landmark traversal order, including section and
	// group lines (entries with an empty Component and no lookup).
	Findings []models.Finding

	// Excerpts carry landmark outer HTML in traversal order.
	Excerpts []Excerpt
}

// Excerpt is a landmark's raw markup captured for the report.
type Excerpt struct {
	Label string
	HTML  string
}

// DashboardPlan maps the dashboard page (/): header landmarks plus the
// master-list controls inside the main content grid.
func DashboardPlan() PagePlan {
	return PagePlan{
		Title:  "VUE Dashboard",
		Path:   "/",
		Indent: 0,
		Sections: []Section{
			{
				Name:   "Header",
				Region: "header",
				Entries: []Entry{
					{Label: "VUE Logo", Loc: Locator{Tag: "a", TestID: "logoButton"}},
					{GroupLabel: "Navigation Links:", Repeat: true, Loc: Locator{Tag: "a", Role: "tab"}},
					{Label: "Logout Button", Loc: Locator{Tag: "button", Text: "Logout"}},
				},
			},
			{
				Name:   "Main Content Area",
				Region: "div.MuiGrid2-grid-xs-12",
				Entries: []Entry{
					{Label: "Search SCCs...", Loc: Locator{Tag: "input", ID: "sccSearchBar"}},
					{Label: `"Update Master List" Button`, Loc: Locator{Tag: "button", TestID: "updateMasterList"}},
					{Label: `"Create Collection Deck" Button`, Loc: Locator{Tag: "button", TestID: "openCreateNewFlowButton"}},
					{Label: `"ADD SCC" Button`, Loc: Locator{Tag: "button", TestID: "addSccButton"}},
					{Label: "SCCs Table", Loc: Locator{Tag: "table", TestID: "masterListTable"}, Excerpt: true},
				},
			},
		},
	}
}

// HistoryPlan maps the history page (/history): date filters, reset, and the
// two status tables located by their section captions.
func HistoryPlan() PagePlan {
	return PagePlan{
		Title:  "History Page",
		Path:   "/history",
		Indent: 1,
		Sections: []Section{
			{
				Entries: []Entry{
					{Label: "Start Date Textbox", Loc: Locator{Tag: "input", TestID: "start-date"}},
					{Label: "End Date Textbox", Loc: Locator{Tag: "input", TestID: "end-date"}},
					{Label: "Reset Button", Loc: Locator{Tag: "button", TestID: "reset"}},
					{Label: "Ready to Continue Table", AfterHeading: "Ready to Continue", Excerpt: true},
					{Label: "Completed Decks Table", AfterHeading: "Completed Decks", Excerpt: true},
				},
			},
		},
	}
}

// MapPage applies a plan to a snapshot: every landmark is looked up with its
// locator and classified. Missing landmarks are never fatal; they appear in
// the map as "Unknown".
func MapPage(snap *Snapshot, plan PagePlan, cls Classifier) (*PageMap, error) {
	pm := &PageMap{
		Title:  plan.Title,
		Path:   plan.Path,
		Indent: plan.Indent,
	}

	for _, sec := range plan.Sections {
		indent := plan.Indent + 1
		if sec.Name != "" {
			pm.Findings = append(pm.Findings, models.Finding{
				Name: sec.Name, Page: plan.Path, Indent: indent,
			})
			indent++
		}

		doc, err := snap.Scoped(sec.Region)
		if err != nil {
			return nil, err
		}

		for _, e := range sec.Entries {
			if e.Repeat {
				pm.Findings = append(pm.Findings, models.Finding{
					Name: e.GroupLabel, Page: plan.Path, Indent: indent,
				})
				for _, match := range e.Loc.FindAll(doc) {
					pm.Findings = append(pm.Findings, models.Finding{
						Name:      strings.TrimSpace(match.Text()),
						Component: cls.Classify(match),
						Page:      plan.Path,
						Indent:    indent + 1,
					})
				}
				continue
			}

			var node *goquery.Selection
			if e.AfterHeading != "" {
				node = NextTableAfter(snap.Doc, "h6", e.AfterHeading)
			} else {
				node = e.Loc.Find(doc)
			}

			pm.Findings = append(pm.Findings, models.Finding{
				Name:      e.Label,
				Component: cls.Classify(node),
				Page:      plan.Path,
				Indent:    indent,
			})

			if e.Excerpt && node != nil {
				if raw, err := goquery.OuterHtml(node); err == nil {
					pm.Excerpts = append(pm.Excerpts, Excerpt{Label: e.Label, HTML: raw})
				}
			}
		}
	}

	return pm, nil
}
