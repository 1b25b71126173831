package recipe

import (
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionKind names the operation a header action performs. The executor owns
// the closed set of kinds; recipes compare them case-insensitively.
type ActionKind string

// Action kinds understood by the header executor.
const (
	ActionAdd     ActionKind = "ADD"
	ActionBlank   ActionKind = "BLANK"
	ActionJitter  ActionKind = "JITTER"
	ActionKeep    ActionKind = "KEEP"
	ActionRemove  ActionKind = "REMOVE"
	ActionReplace ActionKind = "REPLACE"
)

// String returns the string representation of the ActionKind.
func (k ActionKind) String() string {
	return string(k)
}

// Is reports whether k names the same kind as other, ignoring case.
func (k ActionKind) Is(other ActionKind) bool {
	return normalize(string(k)) == normalize(string(other))
}

// IsKnown reports whether k is one of the kinds the executor understands.
func (k ActionKind) IsKnown() bool {
	switch ActionKind(normalize(string(k))) {
	case ActionAdd, ActionBlank, ActionJitter, ActionKeep, ActionRemove, ActionReplace:
		return true
	default:
		return false
	}
}

// SupportedActionKinds returns the kinds the executor understands.
func SupportedActionKinds() []string {
	return []string{
		ActionAdd.String(),
		ActionBlank.String(),
		ActionJitter.String(),
		ActionKeep.String(),
		ActionRemove.String(),
		ActionReplace.String(),
	}
}

// Action is a single header instruction, e.g. {action: REMOVE, field: PatientName}.
type Action struct {
	// Action is the operation to perform.
	Action ActionKind `json:"action" yaml:"action"`

	// Field is the header field or field expression the action targets.
	Field string `json:"field" yaml:"field"`

	// Value is the action argument (replacement value, jitter days, ...).
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Options carries executor-specific settings for the action.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Matches reports whether a has the given kind and field, ignoring case.
// An empty kind or field matches anything.
func (a Action) Matches(kind ActionKind, field string) bool {
	if kind != "" && !a.Action.Is(kind) {
		return false
	}
	if field != "" && normalize(a.Field) != normalize(field) {
		return false
	}
	return true
}

// DecodeOptions decodes Options into out, converting loosely typed values
// (e.g. "2" into an int) the way recipe text produces them.
func (a Action) DecodeOptions(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create options decoder: %w", err)
	}
	if err := decoder.Decode(a.Options); err != nil {
		return fmt.Errorf("invalid options for %s %s: %w", a.Action, a.Field, err)
	}
	return nil
}

// JitterOptions configures a JITTER action.
type JitterOptions struct {
	Days  int `mapstructure:"days"`
	Years int `mapstructure:"years"`
}

// TotalDays returns the jitter offset in days, counting a year as 365 days.
func (o JitterOptions) TotalDays() int {
	return o.Years*365 + o.Days
}

// JitterOptions decodes the options of a JITTER action. Days defaults to one
// when not set.
func (a Action) JitterOptions() (JitterOptions, error) {
	opts := JitterOptions{Days: 1}
	if len(a.Options) == 0 {
		return opts, nil
	}
	if err := a.DecodeOptions(&opts); err != nil {
		return JitterOptions{}, err
	}
	return opts, nil
}

func (a Action) clone() Action {
	a.Options = maps.Clone(a.Options)
	return a
}

// normalize upper-cases s for case-insensitive comparison. A Caser is not
// safe for concurrent use, so one is built per call.
func normalize(s string) string {
	return cases.Upper(language.Und).String(s)
}
