package inspect

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

func TestFind_ByTestID(t *testing.T) {
	doc := docFromHTML(t, `
		<a href="/">plain</a>
		<a data-testid="logoButton" href="/">logo</a>`)

	got := Locator{Tag: "a", TestID: "logoButton"}.Find(doc)
	if got == nil {
		t.Fatal("Find returned nil for present testid")
	}
	if text := strings.TrimSpace(got.Text()); text != "logo" {
		t.Errorf("found wrong element, text = %q", text)
	}
}

func TestFind_ByID(t *testing.T) {
	doc := docFromHTML(t, `<input id="sccSearchBar" placeholder="Search SCCs...">`)

	if got := (Locator{Tag: "input", ID: "sccSearchBar"}).Find(doc); got == nil {
		t.Error("Find returned nil for present id")
	}
}

func TestFind_ByRole(t *testing.T) {
	doc := docFromHTML(t, `<a role="tab" href="/a">A</a><a role="tab" href="/b">B</a>`)

	got := Locator{Tag: "a", Role: "tab"}.Find(doc)
	if got == nil {
		t.Fatal("Find returned nil for present role")
	}
	if text := strings.TrimSpace(got.Text()); text != "A" {
		t.Errorf("Find should return first match in document order, got %q", text)
	}
}

func TestFind_ByText(t *testing.T) {
	doc := docFromHTML(t, `
		<button> Logout </button>
		<button>Logout Everywhere</button>`)

	got := Locator{Tag: "button", Text: "Logout"}.Find(doc)
	if got == nil {
		t.Fatal("Find returned nil for exact text match")
	}
	if text := strings.TrimSpace(got.Text()); text != "Logout" {
		t.Errorf("text match should be exact after trimming, got %q", text)
	}
}

func TestFind_AbsentReturnsNil(t *testing.T) {
	doc := docFromHTML(t, `<div>nothing here</div>`)

	if got := (Locator{Tag: "button", TestID: "missing"}).Find(doc); got != nil {
		t.Error("Find should return nil for an absent landmark")
	}
}

func TestFind_TestIDTakesPriorityOverText(t *testing.T) {
	doc := docFromHTML(t, `
		<button>Save</button>
		<button data-testid="saveButton">Other</button>`)

	got := Locator{Tag: "button", TestID: "saveButton", Text: "Save"}.Find(doc)
	if got == nil {
		t.Fatal("Find returned nil")
	}
	if text := strings.TrimSpace(got.Text()); text != "Other" {
		t.Errorf("testid should win over text, got %q", text)
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	doc := docFromHTML(t, `
		<a role="tab">Dashboard</a>
		<a role="tab">History</a>
		<a role="tab">Admin</a>`)

	loc := Locator{Tag: "a", Role: "tab"}
	matches := loc.FindAll(doc)
	if len(matches) != 3 {
		t.Fatalf("FindAll returned %d matches, want 3", len(matches))
	}

	want := []string{"Dashboard", "History", "Admin"}
	for i, m := range matches {
		if text := strings.TrimSpace(m.Text()); text != want[i] {
			t.Errorf("match %d = %q, want %q", i, text, want[i])
		}
	}

	// Re-querying the same document must yield the same result.
	again := loc.FindAll(doc)
	if len(again) != 3 {
		t.Errorf("second FindAll returned %d matches, want 3", len(again))
	}
}

func TestFindAll_NoMatches(t *testing.T) {
	doc := docFromHTML(t, `<div>empty</div>`)

	if got := (Locator{Tag: "a", Role: "tab"}).FindAll(doc); len(got) != 0 {
		t.Errorf("FindAll on empty doc returned %d matches", len(got))
	}
}

func TestNextTableAfter_FindsFollowingTable(t *testing.T) {
	doc := docFromHTML(t, `
		<h6>Ready to Continue</h6>
		<div><table id="first"><tr><td>a</td></tr></table></div>
		<h6>Completed Decks</h6>
		<table id="second"><tr><td>b</td></tr></table>`)

	got := NextTableAfter(doc, "h6", "Ready to Continue")
	if got == nil {
		t.Fatal("NextTableAfter returned nil")
	}
	if id, _ := got.Attr("id"); id != "first" {
		t.Errorf("found table %q, want first", id)
	}

	got = NextTableAfter(doc, "h6", "Completed Decks")
	if got == nil {
		t.Fatal("NextTableAfter returned nil for second heading")
	}
	if id, _ := got.Attr("id"); id != "second" {
		t.Errorf("found table %q, want second", id)
	}
}

func TestNextTableAfter_TableBeforeHeadingIgnored(t *testing.T) {
	doc := docFromHTML(t, `
		<table id="early"><tr><td>x</td></tr></table>
		<h6>Ready to Continue</h6>`)

	if got := NextTableAfter(doc, "h6", "Ready to Continue"); got != nil {
		t.Error("NextTableAfter should not return a table preceding the heading")
	}
}

func TestNextTableAfter_MissingHeading(t *testing.T) {
	doc := docFromHTML(t, `<table><tr><td>x</td></tr></table>`)

	if got := NextTableAfter(doc, "h6", "Nope"); got != nil {
		t.Error("NextTableAfter should return nil when the heading is absent")
	}
}
