package audit

import (
	"github.com/go-rod/rod"

	"github.com/dredding8/malibu-ui-private/models"
)

// HistoryHeaders are the column headers the history page table must carry,
// each exactly once.
var HistoryHeaders = []string{
	"Deck Name",
	"Deck Status",
	"Processing Status",
	"Progress",
	"Created",
	"Completed",
	"Actions",
}

// HeaderObservation is the raw DOM evidence gathered for the header check.
type HeaderObservation struct {
	// Counts maps each expected header to the number of leaf elements whose
	// trimmed text matches it exactly.
	Counts map[string]int

	// Placements records tag and parent tag for every match.
	Placements map[string][]models.HeaderPlacement

	TheadCount int
	TableCount int

	// AllInThead is true when every matched element sits inside a thead.
	AllInThead bool
}

const headerScanJS = `(expected) => {
	const counts = {};
	const placements = {};
	let allInThead = true;
	for (const header of expected) {
		counts[header] = 0;
		placements[header] = [];
	}
	const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_ELEMENT);
	let node;
	while ((node = walker.nextNode())) {
		if (node.children.length > 0) continue;
		const text = (node.textContent || '').trim();
		if (!(text in counts)) continue;
		counts[text]++;
		placements[text].push({
			tag: node.tagName.toLowerCase(),
			parent: node.parentElement ? node.parentElement.tagName.toLowerCase() : ''
		});
		if (!node.closest('thead')) allInThead = false;
	}
	return {
		counts: counts,
		placements: placements,
		theadCount: document.querySelectorAll('thead').length,
		tableCount: document.querySelectorAll('table').length,
		allInThead: allInThead
	};
}`

// ObserveHeaders scans the live page for the expected header texts, counting
// only leaf elements whose trimmed text is an exact match.
func ObserveHeaders(p *rod.Page, expected []string) (HeaderObservation, error) {
	obs := HeaderObservation{
		Counts:     make(map[string]int),
		Placements: make(map[string][]models.HeaderPlacement),
	}

	res, err := p.Eval(headerScanJS, expected)
	if err != nil {
		return obs, err
	}

	for _, header := range expected {
		obs.Counts[header] = res.Value.Get("counts").Get(header).Int()
		for _, pl := range res.Value.Get("placements").Get(header).Arr() {
			obs.Placements[header] = append(obs.Placements[header], models.HeaderPlacement{
				Tag:    pl.Get("tag").Str(),
				Parent: pl.Get("parent").Str(),
			})
		}
	}
	obs.TheadCount = res.Value.Get("theadCount").Int()
	obs.TableCount = res.Value.Get("tableCount").Int()
	obs.AllInThead = res.Value.Get("allInThead").Bool()
	return obs, nil
}

// EvaluateHeaders turns a raw observation into a verdict. A header is missing
// when its count is zero and duplicated when above one; either condition, or
// matches outside a thead, counts as an issue.
func EvaluateHeaders(expected []string, obs HeaderObservation) models.HeaderCheck {
	check := models.HeaderCheck{
		Counts:     obs.Counts,
		TheadCount: obs.TheadCount,
		TableCount: obs.TableCount,
		AllInThead: obs.AllInThead,
	}

	for _, header := range expected {
		switch n := obs.Counts[header]; {
		case n == 0:
			check.Missing = append(check.Missing, header)
			check.Issues++
		case n > 1:
			check.Duplicates = append(check.Duplicates, header)
			check.Issues++
			if check.Placements == nil {
				check.Placements = make(map[string][]models.HeaderPlacement)
			}
			check.Placements[header] = obs.Placements[header]
		}
	}

	if !obs.AllInThead {
		check.Issues++
	}
	return check
}
