package audit

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/dredding8/malibu-ui-private/models"
)

// maxErrorLen bounds the failure detail recorded per element.
const maxErrorLen = 100

// maxTextLen bounds the captured element text.
const maxTextLen = 50

// textInputTypes are the input types the probe will write into.
var textInputTypes = map[string]bool{
	"":       true,
	"text":   true,
	"search": true,
	"email":  true,
	"number": true,
}

// ButtonTarget is one clickable element under probe. Implementations wrap
// live browser elements; tests substitute fakes.
type ButtonTarget interface {
	// Describe captures the visible text and enabled state before acting.
	Describe() (text string, disabled bool, err error)

	// Click invokes the element's click action.
	Click() error
}

// InputTarget is one fillable element under probe.
type InputTarget interface {
	// Describe captures the input type and placeholder before acting.
	Describe() (inputType, placeholder string, err error)

	// Fill writes the probe value into the element.
	Fill(value string) error

	// Value reads the element's current value back.
	Value() (string, error)
}

// ProbeOptions configures the interaction probe.
type ProbeOptions struct {
	// ClickSettle is the pause after each click, letting asynchronous UI
	// updates finish before the next observation.
	ClickSettle time.Duration

	// FillSettle is the pause between writing an input and reading back.
	FillSettle time.Duration

	// ProbeValue is the fixed text written into inputs.
	ProbeValue string

	// BeforeClick and AfterClick, when set, capture a visual snapshot
	// around each click (index is 1-based).
	BeforeClick func(index int)
	AfterClick  func(index int)
}

// ProbeButtons exercises each target in order. A failure on one element is
// recorded on that element alone and never aborts the remaining probes;
// disabled elements are recorded as skipped, not failed.
func ProbeButtons(targets []ButtonTarget, opts ProbeOptions) []models.InteractionResult {
	results := make([]models.InteractionResult, 0, len(targets))
	for i, target := range targets {
		results = append(results, probeButton(i+1, target, opts))
	}
	return results
}

func probeButton(index int, target ButtonTarget, opts ProbeOptions) (res models.InteractionResult) {
	res = models.InteractionResult{Index: index, Kind: "button"}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = "failed"
			res.Error = truncate(fmt.Sprint(r), maxErrorLen)
		}
	}()

	text, disabled, err := target.Describe()
	if err != nil {
		res.Outcome = "failed"
		res.Error = truncate(err.Error(), maxErrorLen)
		return res
	}
	res.Text = truncate(strings.TrimSpace(text), maxTextLen)

	if disabled {
		slog.Info("button disabled, skipping", "index", index, "text", res.Text)
		res.Outcome = "skipped"
		return res
	}

	if opts.BeforeClick != nil {
		opts.BeforeClick(index)
	}

	if err := target.Click(); err != nil {
		slog.Warn("button click failed", "index", index, "error", err)
		res.Outcome = "failed"
		res.Error = truncate(err.Error(), maxErrorLen)
		return res
	}
	time.Sleep(opts.ClickSettle)

	if opts.AfterClick != nil {
		opts.AfterClick(index)
	}

	slog.Info("button clicked", "index", index, "text", res.Text)
	res.Outcome = "clicked"
	return res
}

// ProbeInputs fills each text-like target with the probe value and reads it
// back to confirm the input accepted it. Same per-element isolation as
// ProbeButtons.
func ProbeInputs(targets []InputTarget, opts ProbeOptions) []models.InteractionResult {
	results := make([]models.InteractionResult, 0, len(targets))
	for i, target := range targets {
		results = append(results, probeInput(i+1, target, opts))
	}
	return results
}

func probeInput(index int, target InputTarget, opts ProbeOptions) (res models.InteractionResult) {
	res = models.InteractionResult{Index: index, Kind: "input"}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = "failed"
			res.Error = truncate(fmt.Sprint(r), maxErrorLen)
		}
	}()

	inputType, placeholder, err := target.Describe()
	if err != nil {
		res.Outcome = "failed"
		res.Error = truncate(err.Error(), maxErrorLen)
		return res
	}
	res.Text = truncate(strings.TrimSpace(inputType+" "+placeholder), maxTextLen)

	if !textInputTypes[inputType] {
		slog.Info("input type not probed, skipping", "index", index, "type", inputType)
		res.Outcome = "skipped"
		return res
	}

	if err := target.Fill(opts.ProbeValue); err != nil {
		slog.Warn("input fill failed", "index", index, "error", err)
		res.Outcome = "failed"
		res.Error = truncate(err.Error(), maxErrorLen)
		return res
	}
	time.Sleep(opts.FillSettle)

	value, err := target.Value()
	if err != nil {
		res.Outcome = "failed"
		res.Error = truncate(err.Error(), maxErrorLen)
		return res
	}

	slog.Info("input filled", "index", index, "value", value)
	res.Outcome = "filled"
	res.Value = value
	return res
}

// --- rod adapters ---

type rodButton struct{ el *rod.Element }

func (b rodButton) Describe() (string, bool, error) {
	text, err := b.el.Text()
	if err != nil {
		return "", false, err
	}
	prop, err := b.el.Property("disabled")
	if err != nil {
		return text, false, err
	}
	return text, prop.Bool(), nil
}

func (b rodButton) Click() error {
	return b.el.Click(proto.InputMouseButtonLeft, 1)
}

type rodInput struct{ el *rod.Element }

func (in rodInput) Describe() (string, string, error) {
	inputType, err := in.el.Attribute("type")
	if err != nil {
		return "", "", err
	}
	placeholder, err := in.el.Attribute("placeholder")
	if err != nil {
		return deref(inputType), "", err
	}
	return deref(inputType), deref(placeholder), nil
}

func (in rodInput) Fill(value string) error {
	if err := in.el.SelectAllText(); err != nil {
		return err
	}
	return in.el.Input(value)
}

func (in rodInput) Value() (string, error) {
	prop, err := in.el.Property("value")
	if err != nil {
		return "", err
	}
	return prop.Str(), nil
}

// CollectButtons returns up to max visible buttons as probe targets, plus
// the total number of visible buttons found.
func CollectButtons(p *rod.Page, max int) ([]ButtonTarget, int, error) {
	els, err := p.Elements("button")
	if err != nil {
		return nil, 0, err
	}
	visible := visibleElements(els)

	targets := make([]ButtonTarget, 0, max)
	for _, el := range visible {
		if len(targets) >= max {
			break
		}
		targets = append(targets, rodButton{el: el})
	}
	return targets, len(visible), nil
}

// CollectInputs returns up to max visible inputs as probe targets, plus the
// total number of visible inputs found.
func CollectInputs(p *rod.Page, max int) ([]InputTarget, int, error) {
	els, err := p.Elements("input, textarea")
	if err != nil {
		return nil, 0, err
	}
	visible := visibleElements(els)

	targets := make([]InputTarget, 0, max)
	for _, el := range visible {
		if len(targets) >= max {
			break
		}
		targets = append(targets, rodInput{el: el})
	}
	return targets, len(visible), nil
}

func visibleElements(els rod.Elements) []*rod.Element {
	var out []*rod.Element
	for _, el := range els {
		if ok, err := el.Visible(); err == nil && ok {
			out = append(out, el)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
