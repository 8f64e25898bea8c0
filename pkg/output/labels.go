package output

import "github.com/kazuma-desu/showmore/pkg/truncate"

const (
	DefaultMoreLabel = ">>"
	DefaultLessLabel = "<<"

	labelSeparator = " "
)

// Labels are the toggle captions shown after truncated text.
type Labels struct {
	More string `json:"more,omitempty" yaml:"more,omitempty"`
	Less string `json:"less,omitempty" yaml:"less,omitempty"`
}

// DefaultLabels returns the built-in toggle captions.
func DefaultLabels() Labels {
	return Labels{More: DefaultMoreLabel, Less: DefaultLessLabel}
}

// WithDefaults fills empty captions with the built-in ones.
func (l Labels) WithDefaults() Labels {
	if l.More == "" {
		l.More = DefaultMoreLabel
	}
	if l.Less == "" {
		l.Less = DefaultLessLabel
	}
	return l
}

// Collapsed renders the visible text followed by the "more" label.
// Text that was not truncated is returned unchanged.
func Collapsed(r truncate.Result, l Labels) string {
	if !r.Truncated() {
		return r.Visible
	}
	return r.Visible + labelSeparator + l.WithDefaults().More
}

// Expanded renders the full text followed by the "less" label.
func Expanded(r truncate.Result, l Labels) string {
	if !r.Truncated() {
		return r.Visible
	}
	return r.Visible + r.Hidden + labelSeparator + l.WithDefaults().Less
}

// Render picks Collapsed or Expanded.
func Render(r truncate.Result, l Labels, expand bool) string {
	if expand {
		return Expanded(r, l)
	}
	return Collapsed(r, l)
}

// styledCollapsed is Collapsed with terminal styling on the label.
func styledCollapsed(r truncate.Result, l Labels) string {
	if !r.Truncated() {
		return r.Visible
	}
	return r.Visible + labelSeparator + StyleIfTerminal(labelStyle, l.WithDefaults().More)
}

// styledExpanded dims the hidden part so the cut point stays visible.
func styledExpanded(r truncate.Result, l Labels) string {
	if !r.Truncated() {
		return r.Visible
	}
	return r.Visible + StyleIfTerminal(hiddenStyle, r.Hidden) + labelSeparator + StyleIfTerminal(labelStyle, l.WithDefaults().Less)
}
