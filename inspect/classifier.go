// Package inspect performs static analysis of HTML snapshots: it classifies
// markup nodes by UI-toolkit component family and locates named landmarks
// through a prioritized selector strategy.
package inspect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dredding8/malibu-ui-private/models"
)

// Classifier infers which UI-toolkit component rendered a markup node from
// the toolkit's class-naming convention (e.g. "MuiButton-root" → "MuiButton").
type Classifier struct {
	// Prefix is the toolkit's reserved class prefix, e.g. "Mui".
	Prefix string

	// Separator splits the component family from its modifier, e.g. "-".
	Separator string
}

// NewClassifier creates a Classifier for the given toolkit prefix.
// An empty prefix falls back to "Mui".
func NewClassifier(prefix string) Classifier {
	if prefix == "" {
		prefix = "Mui"
	}
	return Classifier{Prefix: prefix, Separator: "-"}
}

// Classify returns the component family of the node, or models.Unknown when
// the node is absent or carries no toolkit-prefixed class.
//
// The class list is scanned in declared order and the first prefixed token
// wins; when a node carries multiple toolkit-prefixed classes the later ones
// are ignored. Classify never returns an error and is safe on nil selections.
func (c Classifier) Classify(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return models.Unknown
	}
	sep := c.Separator
	if sep == "" {
		sep = "-"
	}
	for _, cls := range strings.Fields(sel.AttrOr("class", "")) {
		if strings.HasPrefix(cls, c.Prefix) {
			if i := strings.Index(cls, sep); i >= 0 {
				return cls[:i]
			}
			return cls
		}
	}
	return models.Unknown
}
