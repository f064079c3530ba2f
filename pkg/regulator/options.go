package regulator

import (
	"fmt"

	"gopkg.in/yaml.v3"

	rerrors "github.com/vnykmshr/regulator/pkg/common/errors"
)

// Mode selects how a regulator shapes invocations.
type Mode int

const (
	// ModeThrottle executes at most once per wait window.
	ModeThrottle Mode = iota

	// ModeDebounce executes only after calls stop arriving for the wait duration.
	ModeDebounce
)

// String returns the lowercase mode name used in logs and metric labels.
func (m Mode) String() string {
	switch m {
	case ModeThrottle:
		return "throttle"
	case ModeDebounce:
		return "debounce"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m == ModeThrottle || m == ModeDebounce
}

// Options are the behavioural flags of a regulator. The zero value is a
// trailing-edge throttle.
type Options struct {
	// Mode selects throttling or debouncing.
	Mode Mode

	// Immediate runs the first call of a window (throttle) or burst
	// (debounce) synchronously on the caller's goroutine.
	Immediate bool

	// Once disables the regulator after the wrapped function has run once.
	Once bool
}

// optionsDocument is the serialized form of Options. Debounce is a flag
// rather than a Mode so documents stay boolean-only.
type optionsDocument struct {
	Immediate bool `yaml:"immediate"`
	Debounce  bool `yaml:"debounce"`
	Once      bool `yaml:"once"`
}

// UnmarshalYAML decodes options from a mapping with the boolean keys
// immediate, debounce and once. Unknown keys are ignored and missing keys
// default to false.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	var doc optionsDocument
	if err := node.Decode(&doc); err != nil {
		return err
	}

	*o = Options{
		Mode:      ModeThrottle,
		Immediate: doc.Immediate,
		Once:      doc.Once,
	}
	if doc.Debounce {
		o.Mode = ModeDebounce
	}
	return nil
}

// MarshalYAML encodes options in the same shape UnmarshalYAML accepts.
func (o Options) MarshalYAML() (interface{}, error) {
	return optionsDocument{
		Immediate: o.Immediate,
		Debounce:  o.Mode == ModeDebounce,
		Once:      o.Once,
	}, nil
}

// ParseOptions decodes Options from a YAML or JSON document.
func ParseOptions(data []byte) (Options, error) {
	var opts Options
	if len(data) == 0 {
		return opts, nil
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, rerrors.NewOperationError(moduleName, "ParseOptions",
			fmt.Errorf("%w: %v", rerrors.ErrInvalidOptions, err))
	}
	return opts, nil
}
