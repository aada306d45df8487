// Package store implements an INI-style section/option store with
// ${option} and ${section:option} interpolation.
package store

import (
	"regexp"
	"sort"
	"strings"

	"pnc-buildconfig/internal/types"
)

const (
	// DefaultSection supplies fallback options to every other section. It
	// always exists, even when empty.
	DefaultSection = "DEFAULT"

	// MaxInterpolationDepth bounds nested substitution so that reference
	// cycles terminate with an error.
	MaxInterpolationDepth = 10
)

var referencePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Item is one option of a section together with its value.
type Item struct {
	Option string
	Value  string
}

type section struct {
	values map[string]string
	order  []string
}

func newSection() *section {
	return &section{values: map[string]string{}}
}

func (s *section) put(option, value string) {
	if _, ok := s.values[option]; !ok {
		s.order = append(s.order, option)
	}
	s.values[option] = value
}

// Store keeps raw option values per section. Option names are case
// insensitive, section names are not. A Store is not safe for concurrent
// mutation.
type Store struct {
	defaults *section
	sections map[string]*section
	order    []string
}

func New() *Store {
	return &Store{
		defaults: newSection(),
		sections: map[string]*section{},
	}
}

// AddSection declares a new section. Declaring the same name twice fails.
func (s *Store) AddSection(name string) error {
	if name == DefaultSection {
		return types.NewConfigError(types.ErrDuplicateSection, name, "", "the default section always exists")
	}
	if _, ok := s.sections[name]; ok {
		return types.NewConfigError(types.ErrDuplicateSection, name, "", "section declared more than once")
	}
	s.sections[name] = newSection()
	s.order = append(s.order, name)
	return nil
}

// Set stores a value after checking that its interpolation syntax is well
// formed. Referenced options are not required to exist yet.
func (s *Store) Set(sectionName, option, value string) error {
	if err := checkSyntax(sectionName, option, value); err != nil {
		return err
	}
	return s.SetRaw(sectionName, option, value)
}

// SetRaw stores a value without any syntax check. File loading uses this so
// that malformed values only fail when they are read.
func (s *Store) SetRaw(sectionName, option, value string) error {
	target, err := s.target(sectionName)
	if err != nil {
		return err
	}
	target.put(optionKey(option), value)
	return nil
}

func (s *Store) target(sectionName string) (*section, error) {
	if sectionName == "" || sectionName == DefaultSection {
		return s.defaults, nil
	}
	sec, ok := s.sections[sectionName]
	if !ok {
		return nil, types.NewConfigError(types.ErrUnknownSection, sectionName, "", "section is not declared")
	}
	return sec, nil
}

// Sections returns the declared section names in declaration order. The
// default section is not listed.
func (s *Store) Sections() []string {
	return append([]string(nil), s.order...)
}

func (s *Store) HasSection(name string) bool {
	_, ok := s.sections[name]
	return ok
}

// HasOption reports whether the option is set in the section or in the
// default section. Unknown sections report false.
func (s *Store) HasOption(sectionName, option string) bool {
	view, err := s.view(sectionName)
	if err != nil {
		return false
	}
	_, ok := view[optionKey(option)]
	return ok
}

// Options lists the option names visible in a section, defaults included,
// sorted by name.
func (s *Store) Options(sectionName string) ([]string, error) {
	view, err := s.view(sectionName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(view))
	for name := range view {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the stored value without interpolation.
func (s *Store) Raw(sectionName, option string) (string, error) {
	view, err := s.view(sectionName)
	if err != nil {
		return "", err
	}
	key := optionKey(option)
	value, ok := view[key]
	if !ok {
		return "", types.NewConfigError(types.ErrMissingOption, sectionName, key, "option is not set")
	}
	return value, nil
}

// Get returns the interpolated value of an option.
func (s *Store) Get(sectionName, option string) (string, error) {
	raw, err := s.Raw(sectionName, option)
	if err != nil {
		return "", err
	}
	return s.interpolate(sectionName, optionKey(option), raw, 1)
}

// Lookup is Get for options that may legitimately be absent: a missing
// option yields ok=false and no error. Unknown sections and interpolation
// failures are still reported.
func (s *Store) Lookup(sectionName, option string) (string, bool, error) {
	view, err := s.view(sectionName)
	if err != nil {
		return "", false, err
	}
	key := optionKey(option)
	raw, ok := view[key]
	if !ok {
		return "", false, nil
	}
	value, err := s.interpolate(sectionName, key, raw, 1)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Items returns every option visible in the section, defaults first, each
// interpolated unless raw is set.
func (s *Store) Items(sectionName string, raw bool) ([]Item, error) {
	view, err := s.view(sectionName)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := map[string]struct{}{}
	collect := func(order []string) {
		for _, name := range order {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	collect(s.defaults.order)
	if sec, ok := s.sections[sectionName]; ok {
		collect(sec.order)
	}
	items := make([]Item, 0, len(names))
	for _, name := range names {
		value := view[name]
		if !raw {
			value, err = s.interpolate(sectionName, name, value, 1)
			if err != nil {
				return nil, err
			}
		}
		items = append(items, Item{Option: name, Value: value})
	}
	return items, nil
}

// view merges the default section with the named section.
func (s *Store) view(sectionName string) (map[string]string, error) {
	out := make(map[string]string, len(s.defaults.values))
	for k, v := range s.defaults.values {
		out[k] = v
	}
	if sectionName == DefaultSection {
		return out, nil
	}
	sec, ok := s.sections[sectionName]
	if !ok {
		return nil, types.NewConfigError(types.ErrUnknownSection, sectionName, "", "section is not declared")
	}
	for k, v := range sec.values {
		out[k] = v
	}
	return out, nil
}

func optionKey(option string) string {
	return strings.ToLower(option)
}

func checkSyntax(sectionName, option, value string) error {
	stripped := strings.ReplaceAll(value, "$$", "")
	stripped = referencePattern.ReplaceAllString(stripped, "")
	if pos := strings.IndexByte(stripped, '$'); pos >= 0 {
		return types.NewConfigError(types.ErrInterpolationSyntax, sectionName, optionKey(option),
			"invalid interpolation syntax at position %d", pos).WithValue(value)
	}
	return nil
}
