package fingerprint

import (
	"strings"
	"testing"
)

const tableLayout = `<html><body>
<header><nav><a href="/">home</a></nav></header>
<main><table><thead><tr><th>A</th></tr></thead>
<tbody><tr><td>1</td></tr></tbody></table></main>
</body></html>`

func TestPage_Deterministic(t *testing.T) {
	fp1 := Page(tableLayout)
	fp2 := Page(tableLayout)
	if fp1 != fp2 {
		t.Errorf("same markup produced different fingerprints: %064b vs %064b", fp1, fp2)
	}
}

func TestPage_ContentChangesDoNotMoveFingerprint(t *testing.T) {
	altered := strings.ReplaceAll(tableLayout, ">1<", ">a completely different cell value<")

	fp1 := Page(tableLayout)
	fp2 := Page(altered)
	if fp1 != fp2 {
		t.Errorf("text-only change moved the fingerprint: distance %d", Distance(fp1, fp2))
	}
}

func TestPage_ExtraRowsStaySimilar(t *testing.T) {
	rows := strings.Repeat("<tr><td>x</td></tr>", 5)
	grown := strings.Replace(tableLayout, "<tr><td>1</td></tr>", "<tr><td>1</td></tr>"+rows, 1)

	fp1 := Page(tableLayout)
	fp2 := Page(grown)
	if !Similar(fp1, fp2, 20) {
		t.Errorf("adding table rows should stay similar, distance %d", Distance(fp1, fp2))
	}
}

func TestPage_DifferentLayoutsDiffer(t *testing.T) {
	other := `<html><body>
<form><fieldset><legend>x</legend><input><select><option>a</option></select></fieldset></form>
<article><section><h1>t</h1><p>p</p><ul><li>i</li></ul></section></article>
</body></html>`

	fp1 := Page(tableLayout)
	fp2 := Page(other)
	if dist := Distance(fp1, fp2); dist < 5 {
		t.Errorf("unrelated layouts too close: distance %d", dist)
	}
}

func TestPage_EmptyInput(t *testing.T) {
	if fp := Page(""); fp != 0 {
		t.Errorf("empty input should produce fingerprint 0, got %064b", fp)
	}
}

func TestDistance_Identity(t *testing.T) {
	fp := Page(tableLayout)
	if Distance(fp, fp) != 0 {
		t.Error("distance to self must be 0")
	}
}

func TestSimilar_Threshold(t *testing.T) {
	if !Similar(0b1011, 0b1010, 1) {
		t.Error("distance 1 should be similar at threshold 1")
	}
	if Similar(0b1111, 0b0000, 3) {
		t.Error("distance 4 should not be similar at threshold 3")
	}
}
