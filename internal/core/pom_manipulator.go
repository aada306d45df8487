package core

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"pnc-buildconfig/internal/store"
	"pnc-buildconfig/internal/types"
)

type pomManipulatorSource struct {
	key       types.PomOverride
	option    string
	versioned bool
	warn      bool
}

var pomManipulatorSources = []pomManipulatorSource{
	{key: types.PomOverrideDependencyManagement, option: "depmgmt", versioned: true, warn: true},
	{key: types.PomOverridePluginManagement, option: "pluginmgmt", versioned: true, warn: true},
	{key: types.PomOverridePropertyManagement, option: "propertymgmt", versioned: true, warn: true},
	{key: types.PomOverrideRepositoryInjection, option: "repositoryInjection", versioned: true, warn: true},
	{key: types.PomOverrideProfileInjection, option: "profileinject", versioned: true, warn: true},
	{key: types.PomOverrideRepoReportingRemoval, option: "repoReportingRemoval", warn: true},
	{key: types.PomOverrideSkipDeployment, option: "skipDeployment"},
	{key: types.PomOverrideOverrideTransitive, option: "overrideTransitive"},
}

// pomManipulatorConfigured reports whether ext names a section to read.
// "None" is accepted as an explicit "no extension" marker.
func pomManipulatorConfigured(ext string) bool {
	ext = strings.TrimSpace(ext)
	return ext != "" && ext != "None"
}

// ParsePomManipulator reads the global override values from the given
// extension section. Overrides that refer to a BOM coordinate get the
// section's childversion, or version, appended unless they already carry
// one.
func ParsePomManipulator(ctx context.Context, st *store.Store, section string) (types.PomManipulatorConfig, error) {
	if !st.HasSection(section) {
		log.Ctx(ctx).Error().Str("section", section).Msg("unable to locate dependency-management section")
		return types.PomManipulatorConfig{}, types.NewConfigError(types.ErrMissingPomManipulatorSection, section, "",
			"unable to locate dependency-management section")
	}
	cfg := types.PomManipulatorConfig{
		Section: section,
		Values:  map[types.PomOverride]string{},
	}
	for _, src := range pomManipulatorSources {
		value, ok, err := st.Lookup(section, src.option)
		if err != nil {
			return types.PomManipulatorConfig{}, err
		}
		if !ok || value == "" {
			if src.warn {
				log.Ctx(ctx).Warn().
					Str("section", section).
					Str("option", src.option).
					Msg("unable to locate property for dependency-management-extension")
			}
			continue
		}
		if src.versioned {
			value, err = withVersion(ctx, st, section, value)
			if err != nil {
				return types.PomManipulatorConfig{}, err
			}
		}
		cfg.Values[src.key] = value
	}
	return cfg, nil
}

// withVersion appends a version to a group:artifact coordinate. A value
// with exactly two ':' already carries its own version.
func withVersion(ctx context.Context, st *store.Store, section, value string) (string, error) {
	if strings.Count(value, ":") == 2 {
		return value, nil
	}
	childVersion, ok, err := st.Lookup(section, "childversion")
	if err != nil {
		return "", err
	}
	if ok {
		log.Ctx(ctx).Warn().Str("coordinate", value+":"+childVersion).Msg("using childversion instead of version")
		return value + ":" + childVersion, nil
	}
	version, err := st.Get(section, "version")
	if err != nil {
		if errors.Is(err, types.ErrMissingOption) {
			return "", types.NewConfigError(types.ErrMissingRequiredOption, section, "version",
				"a version or childversion is required for %q", value)
		}
		return "", err
	}
	log.Ctx(ctx).Warn().Str("coordinate", value+":"+version).Msg("using version instead of childversion")
	return value + ":" + version, nil
}
