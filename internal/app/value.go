package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Value reads a single option from the config file, interpolated. Missing
// sections and options are reported together with what is available.
func (s Service) Value(_ context.Context, req ValueRequest) (ValueResult, error) {
	st, _, err := s.loadStore(req.ConfigPath)
	if err != nil {
		return ValueResult{}, err
	}
	section := strings.TrimSpace(req.Section)
	option := strings.TrimSpace(req.Option)
	if !st.HasSection(section) {
		return ValueResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no section %s (available sections: %s)", section, strings.Join(slices.Sorted(slices.Values(st.Sections())), ", ")))
	}
	if !st.HasOption(section, option) {
		options, err := st.Options(section)
		if err != nil {
			return ValueResult{}, wrapConfigError(err, "failed to list options")
		}
		return ValueResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no option %s in section %s (available options: %s)", option, section, strings.Join(options, ", ")))
	}
	value, err := st.Get(section, option)
	if err != nil {
		return ValueResult{}, wrapConfigError(err, "failed to read "+section+"."+option)
	}
	return ValueResult{Value: value}, nil
}
