package core

import (
	"errors"

	"pnc-buildconfig/internal/store"
	"pnc-buildconfig/internal/types"
)

// ReadArtifactConfig reads the source coordinates of a single section
// without applying any build option rules. Only version is required.
func ReadArtifactConfig(st *store.Store, section string) (types.ArtifactConfig, error) {
	if !st.HasSection(section) {
		return types.ArtifactConfig{}, types.NewConfigError(types.ErrUnknownSection, section, "", "section is not declared")
	}
	cfg := types.ArtifactConfig{Artifact: section}

	version, err := st.Get(section, "version")
	if err != nil {
		if errors.Is(err, types.ErrMissingOption) {
			return types.ArtifactConfig{}, types.NewConfigError(types.ErrMissingRequiredOption, section, "version",
				"artifact version is required")
		}
		return types.ArtifactConfig{}, err
	}
	cfg.Version = version

	for _, field := range []optionalString{
		{option: "package", target: &cfg.Package},
		{option: "scmUrl", target: &cfg.ScmURL},
		{option: "patches", target: &cfg.Patches},
		{option: "profiles", target: &cfg.Profiles},
	} {
		if err := readOptional(st, section, field); err != nil {
			return types.ArtifactConfig{}, err
		}
	}
	return cfg, nil
}
