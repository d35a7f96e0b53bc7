package audit

import (
	"math"

	"github.com/go-rod/rod"

	"github.com/dredding8/malibu-ui-private/models"
)

const accessibilityJS = `() => {
	const images = [...document.querySelectorAll('img')];
	const inputs = [...document.querySelectorAll('input, textarea, select')];
	const headings = [...document.querySelectorAll('h1, h2, h3, h4, h5, h6')];

	let withAlt = 0;
	images.forEach(img => {
		const alt = img.getAttribute('alt');
		if (alt && alt.trim().length > 0) withAlt++;
	});

	let labeled = 0;
	inputs.forEach(input => {
		const hasLabel = (input.id && document.querySelector('label[for="' + input.id + '"]')) ||
			input.closest('label') ||
			input.getAttribute('aria-label') ||
			input.getAttribute('aria-labelledby');
		if (hasLabel) labeled++;
	});

	return {
		imagesTotal: images.length,
		imagesWithAlt: withAlt,
		inputsTotal: inputs.length,
		inputsLabeled: labeled,
		headingLevels: headings.map(h => parseInt(h.tagName.charAt(1), 10)),
		landmarks: document.querySelectorAll('[role="main"], [role="navigation"], [role="banner"], [role="contentinfo"], main, nav, header, footer').length,
		focusable: document.querySelectorAll('a[href], button, input, textarea, select, [tabindex]:not([tabindex="-1"])').length,
		skipLinks: document.querySelectorAll('a[href^="#"], .skip-link').length
	};
}`

// CollectAccessibility gathers page-wide accessibility counts in a single
// evaluation.
func CollectAccessibility(p *rod.Page) (models.AccessibilityCounts, error) {
	res, err := p.Eval(accessibilityJS)
	if err != nil {
		return models.AccessibilityCounts{}, err
	}

	v := res.Value
	var levels []int
	for _, l := range v.Get("headingLevels").Arr() {
		levels = append(levels, l.Int())
	}

	return models.AccessibilityCounts{
		ImagesTotal:   v.Get("imagesTotal").Int(),
		ImagesWithAlt: v.Get("imagesWithAlt").Int(),
		InputsTotal:   v.Get("inputsTotal").Int(),
		InputsLabeled: v.Get("inputsLabeled").Int(),
		HeadingLevels: levels,
		Landmarks:     v.Get("landmarks").Int(),
		Focusable:     v.Get("focusable").Int(),
		SkipLinks:     v.Get("skipLinks").Int(),
	}, nil
}

// HeadingIssues counts skipped heading levels: walking headings in document
// order, an issue is recorded whenever a level exceeds the previous one by
// more than one.
func HeadingIssues(levels []int) int {
	issues := 0
	last := 0
	for _, level := range levels {
		if level > last+1 {
			issues++
		}
		last = level
	}
	return issues
}

// Score computes the weighted 0-100 accessibility score:
//
//	alt-text coverage      up to 20 pts (full 20 when no images exist)
//	form-label coverage    up to 30 pts (full 30 when no inputs exist)
//	landmarks              5 pts each, capped at 20
//	heading hierarchy      20 pts minus 5 per skipped level, floor 0;
//	                       0 when the page has no headings at all
//	focusable elements     flat 10 pts when any exist
//
// The result is rounded to the nearest integer and clamped to [0, 100].
func Score(c models.AccessibilityCounts) int {
	score := 0.0

	if c.ImagesTotal > 0 {
		score += float64(c.ImagesWithAlt) / float64(c.ImagesTotal) * 20
	} else {
		score += 20
	}

	if c.InputsTotal > 0 {
		score += float64(c.InputsLabeled) / float64(c.InputsTotal) * 30
	} else {
		score += 30
	}

	score += math.Min(float64(c.Landmarks*5), 20)

	if len(c.HeadingLevels) > 0 {
		score += math.Max(0, 20-float64(HeadingIssues(c.HeadingLevels)*5))
	}

	if c.Focusable > 0 {
		score += 10
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// LetterGrade maps a score to its letter: A>=90, B>=80, C>=70, else D.
func LetterGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	default:
		return "D"
	}
}

// BuildAccessibilityReport derives the score and grade from raw counts.
func BuildAccessibilityReport(c models.AccessibilityCounts) models.AccessibilityReport {
	score := Score(c)
	return models.AccessibilityReport{
		Counts:          c,
		HierarchyIssues: HeadingIssues(c.HeadingLevels),
		Score:           score,
		Grade:           LetterGrade(score),
	}
}
