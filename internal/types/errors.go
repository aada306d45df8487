package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

var (
	ErrInvalidArtifactName          = errors.New("invalid artifact name")
	ErrMissingRequiredOption        = errors.New("missing required option")
	ErrMissingOption                = errors.New("no such option")
	ErrUnknownSection               = errors.New("no such section")
	ErrUnknownArtifact              = errors.New("unknown artifact")
	ErrDuplicateSection             = errors.New("duplicate section")
	ErrMissingSectionHeader         = errors.New("missing section header")
	ErrInterpolationSyntax          = errors.New("interpolation syntax error")
	ErrInterpolationMissingVariable = errors.New("interpolation missing variable")
	ErrInterpolationDepthExceeded   = errors.New("interpolation depth exceeded")
	ErrUnresolvedDependency         = errors.New("unresolved dependency")
	ErrCyclicDependency             = errors.New("cyclic dependency")
	ErrMissingPomManipulatorSection = errors.New("missing pom manipulator section")
)

// ConfigError reports a configuration failure. Kind is one of the sentinel
// errors above and is matched with errors.Is.
type ConfigError struct {
	Kind    error
	Section string
	Option  string
	Value   string
	Msg     string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	var parts []string
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Section != "" {
		parts = append(parts, fmt.Sprintf("section=%q", e.Section))
	}
	if e.Option != "" {
		parts = append(parts, fmt.Sprintf("option=%q", e.Option))
	}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", e.Value))
	}
	if len(parts) == 0 {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), strings.Join(parts, " "))
}

func (e *ConfigError) Unwrap() error { return e.Kind }

// Code maps the error kind onto the errbuilder code used for exit codes.
func (e *ConfigError) Code() errbuilder.ErrCode {
	switch e.Kind {
	case ErrMissingRequiredOption, ErrMissingOption, ErrUnknownSection,
		ErrUnknownArtifact, ErrUnresolvedDependency, ErrMissingPomManipulatorSection:
		return errbuilder.CodeNotFound
	case ErrCyclicDependency:
		return errbuilder.CodeFailedPrecondition
	default:
		return errbuilder.CodeInvalidArgument
	}
}

func NewConfigError(kind error, section, option, format string, args ...any) *ConfigError {
	return &ConfigError{
		Kind:    kind,
		Section: section,
		Option:  option,
		Msg:     fmt.Sprintf(format, args...),
	}
}

// WithValue attaches the offending raw value.
func (e *ConfigError) WithValue(value string) *ConfigError {
	e.Value = value
	return e
}
