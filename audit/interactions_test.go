package audit

import (
	"errors"
	"strings"
	"testing"
)

type fakeButton struct {
	text         string
	disabled     bool
	describeErr  error
	clickErr     error
	panicOnClick bool

	clicks int
}

func (b *fakeButton) Describe() (string, bool, error) {
	return b.text, b.disabled, b.describeErr
}

func (b *fakeButton) Click() error {
	if b.panicOnClick {
		panic("element detached from DOM")
	}
	b.clicks++
	return b.clickErr
}

type fakeInput struct {
	inputType   string
	placeholder string
	fillErr     error

	value string
}

func (in *fakeInput) Describe() (string, string, error) {
	return in.inputType, in.placeholder, nil
}

func (in *fakeInput) Fill(value string) error {
	if in.fillErr != nil {
		return in.fillErr
	}
	in.value = value
	return nil
}

func (in *fakeInput) Value() (string, error) {
	return in.value, nil
}

func TestProbeButtons_AllSucceed(t *testing.T) {
	targets := []ButtonTarget{
		&fakeButton{text: "Update Master List"},
		&fakeButton{text: "ADD SCC"},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, res := range results {
		if res.Outcome != "clicked" {
			t.Errorf("result %d outcome = %q, want clicked", i, res.Outcome)
		}
		if res.Index != i+1 {
			t.Errorf("result %d index = %d, want %d", i, res.Index, i+1)
		}
	}
}

func TestProbeButtons_FailureIsolatedToOneElement(t *testing.T) {
	targets := []ButtonTarget{
		&fakeButton{text: "one"},
		&fakeButton{text: "two", clickErr: errors.New("element not clickable")},
		&fakeButton{text: "three"},
		&fakeButton{text: "four"},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}

	for _, i := range []int{0, 2, 3} {
		if results[i].Outcome != "clicked" {
			t.Errorf("result %d outcome = %q, want clicked", i, results[i].Outcome)
		}
	}
	if results[1].Outcome != "failed" {
		t.Errorf("result 1 outcome = %q, want failed", results[1].Outcome)
	}
	if results[1].Error == "" {
		t.Error("failed result should carry the error message")
	}

	// The failure must not stop later elements from being clicked.
	if targets[3].(*fakeButton).clicks != 1 {
		t.Error("element after a failure was never clicked")
	}
}

func TestProbeButtons_DisabledIsSkippedNotFailed(t *testing.T) {
	targets := []ButtonTarget{
		&fakeButton{text: "Reset", disabled: true},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if results[0].Outcome != "skipped" {
		t.Errorf("disabled button outcome = %q, want skipped", results[0].Outcome)
	}
	if targets[0].(*fakeButton).clicks != 0 {
		t.Error("disabled button must never be clicked")
	}
}

func TestProbeButtons_PanicRecovered(t *testing.T) {
	targets := []ButtonTarget{
		&fakeButton{text: "boom", panicOnClick: true},
		&fakeButton{text: "after"},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if results[0].Outcome != "failed" {
		t.Errorf("panicking probe outcome = %q, want failed", results[0].Outcome)
	}
	if results[1].Outcome != "clicked" {
		t.Errorf("probe after panic outcome = %q, want clicked", results[1].Outcome)
	}
}

func TestProbeButtons_ErrorTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	targets := []ButtonTarget{
		&fakeButton{text: "b", clickErr: errors.New(long)},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if len(results[0].Error) != 100 {
		t.Errorf("error length = %d, want truncation to 100", len(results[0].Error))
	}
}

func TestProbeButtons_TextTruncated(t *testing.T) {
	targets := []ButtonTarget{
		&fakeButton{text: strings.Repeat("long button label ", 10)},
	}

	results := ProbeButtons(targets, ProbeOptions{})
	if len(results[0].Text) > 50 {
		t.Errorf("text length = %d, want at most 50", len(results[0].Text))
	}
}

func TestProbeInputs_FillsTextLikeTypes(t *testing.T) {
	targets := []InputTarget{
		&fakeInput{inputType: ""},
		&fakeInput{inputType: "text"},
		&fakeInput{inputType: "search"},
		&fakeInput{inputType: "email"},
		&fakeInput{inputType: "number"},
	}

	results := ProbeInputs(targets, ProbeOptions{ProbeValue: "test value"})
	for i, res := range results {
		if res.Outcome != "filled" {
			t.Errorf("result %d outcome = %q, want filled", i, res.Outcome)
			continue
		}
		if res.Value != "test value" {
			t.Errorf("result %d value = %q, want the probe value", i, res.Value)
		}
	}
}

func TestProbeInputs_NonTextTypesSkipped(t *testing.T) {
	for _, typ := range []string{"checkbox", "radio", "file", "date", "hidden"} {
		targets := []InputTarget{&fakeInput{inputType: typ}}
		results := ProbeInputs(targets, ProbeOptions{ProbeValue: "x"})
		if results[0].Outcome != "skipped" {
			t.Errorf("type %q outcome = %q, want skipped", typ, results[0].Outcome)
		}
	}
}

func TestProbeInputs_FillFailure(t *testing.T) {
	targets := []InputTarget{
		&fakeInput{inputType: "text", fillErr: errors.New("element is readonly")},
		&fakeInput{inputType: "text"},
	}

	results := ProbeInputs(targets, ProbeOptions{ProbeValue: "x"})
	if results[0].Outcome != "failed" {
		t.Errorf("result 0 outcome = %q, want failed", results[0].Outcome)
	}
	if results[1].Outcome != "filled" {
		t.Errorf("result 1 outcome = %q, want filled", results[1].Outcome)
	}
}
