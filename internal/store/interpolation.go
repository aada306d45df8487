package store

import (
	"regexp"
	"strings"

	"pnc-buildconfig/internal/types"
)

var leadingReference = regexp.MustCompile(`^\$\{([^}]+)\}`)

// interpolate expands every reference in value. section and option name
// the option that value belongs to; nested references resolve relative to
// the section they were found in.
func (s *Store) interpolate(sectionName, option, value string, depth int) (string, error) {
	if depth > MaxInterpolationDepth {
		return "", types.NewConfigError(types.ErrInterpolationDepthExceeded, sectionName, option,
			"value references nest deeper than %d levels", MaxInterpolationDepth).WithValue(value)
	}

	var out strings.Builder
	rest := value
	for rest != "" {
		p := strings.IndexByte(rest, '$')
		if p < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:p])
		rest = rest[p:]

		switch {
		case strings.HasPrefix(rest, "$$"):
			out.WriteByte('$')
			rest = rest[2:]
		case strings.HasPrefix(rest, "${"):
			m := leadingReference.FindStringSubmatch(rest)
			if m == nil {
				return "", types.NewConfigError(types.ErrInterpolationSyntax, sectionName, option,
					"bad interpolation variable reference %q", rest)
			}
			rest = rest[len(m[0]):]
			resolved, refSection, refOption, err := s.resolveReference(sectionName, option, value, m[1])
			if err != nil {
				return "", err
			}
			if strings.Contains(resolved, "$") {
				resolved, err = s.interpolate(refSection, refOption, resolved, depth+1)
				if err != nil {
					return "", err
				}
			}
			out.WriteString(resolved)
		default:
			return "", types.NewConfigError(types.ErrInterpolationSyntax, sectionName, option,
				"'$' must be followed by '$' or '{', found: %q", rest)
		}
	}
	return out.String(), nil
}

// resolveReference looks up the raw value behind ${ref}.
func (s *Store) resolveReference(sectionName, option, value, ref string) (string, string, string, error) {
	path := strings.Split(ref, ":")
	missing := func() error {
		return types.NewConfigError(types.ErrInterpolationMissingVariable, sectionName, option,
			"bad option reference %q", ref).WithValue(value)
	}
	switch len(path) {
	case 1:
		view, err := s.view(sectionName)
		if err != nil {
			return "", "", "", missing()
		}
		key := optionKey(path[0])
		resolved, ok := view[key]
		if !ok {
			return "", "", "", missing()
		}
		return resolved, sectionName, key, nil
	case 2:
		resolved, err := s.Raw(path[0], path[1])
		if err != nil {
			return "", "", "", missing()
		}
		return resolved, path[0], optionKey(path[1]), nil
	default:
		return "", "", "", types.NewConfigError(types.ErrInterpolationSyntax, sectionName, option,
			"more than one ':' found in %q", ref).WithValue(value)
	}
}
