package inspect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Locator describes one stable way of finding a landmark in a document.
// The fields form a fallback chain, most specific first:
//
//	TestID  explicit data-testid attribute (most robust)
//	ID      element id
//	Role    ARIA role
//	Text    literal visible text (least robust, last resort)
//
// Only the first non-empty field is used. Tag optionally constrains the
// element name for Role and Text lookups ("a", "button", ...).
type Locator struct {
	Tag    string
	TestID string
	ID     string
	Role   string
	Text   string
}

// Find returns the first matching node in document order, or nil when the
// landmark is absent. Absence is not an error: downstream classification
// must tolerate it (Classifier maps nil to "Unknown").
func (l Locator) Find(doc *goquery.Document) *goquery.Selection {
	m := l.matches(doc)
	if m == nil || m.Length() == 0 {
		return nil
	}
	return m.First()
}

// FindAll returns every match in document order. The result is finite and
// re-querying the document is always safe.
func (l Locator) FindAll(doc *goquery.Document) []*goquery.Selection {
	m := l.matches(doc)
	if m == nil {
		return nil
	}
	var out []*goquery.Selection
	m.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

func (l Locator) matches(doc *goquery.Document) *goquery.Selection {
	if doc == nil {
		return nil
	}
	tag := l.Tag
	if tag == "" {
		tag = "*"
	}
	switch {
	case l.TestID != "":
		return doc.Find(fmt.Sprintf(`%s[data-testid=%q]`, tag, l.TestID))
	case l.ID != "":
		return doc.Find(fmt.Sprintf(`%s[id=%q]`, tag, l.ID))
	case l.Role != "":
		return doc.Find(fmt.Sprintf(`%s[role=%q]`, tag, l.Role))
	case l.Text != "":
		return doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.TrimSpace(s.Text()) == l.Text
		})
	default:
		return nil
	}
}

// NextTableAfter locates the first <table> that follows, in document order,
// a heading element whose trimmed text equals headingText. Returns nil when
// either the heading or a following table is absent.
//
// This mirrors how the audited app lays out its history page: a section
// caption (<h6>) followed by the section's table, not necessarily siblings.
func NextTableAfter(doc *goquery.Document, headingTag, headingText string) *goquery.Selection {
	if doc == nil {
		return nil
	}
	if headingTag == "" {
		headingTag = "h6"
	}
	var found *goquery.Selection
	seen := false
	doc.Find(headingTag + ", table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == "table" {
			if seen {
				found = s
				return false
			}
			return true
		}
		if strings.TrimSpace(s.Text()) == headingText {
			seen = true
		}
		return true
	})
	return found
}
