package app

import (
	"context"
	"strings"

	"pnc-buildconfig/internal/adapters"
	"pnc-buildconfig/internal/core"
	"pnc-buildconfig/internal/types"
)

// Config resolves one artifact, several artifacts, or the global overrides
// when no artifact is given, and renders the result. Several artifacts are
// rendered as one map per artifact name. A query narrows the output to the
// matching values.
func (s Service) Config(ctx context.Context, req ConfigRequest) (ConfigResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return ConfigResult{}, err
	}

	artifacts := requestedArtifacts(req)
	result := ConfigResult{}
	var value any
	if len(artifacts) > 1 {
		result.Configs, err = reader.Configs(artifacts)
		if err != nil {
			return ConfigResult{}, wrapConfigError(err, "failed to resolve configs")
		}
		value = renderConfigs(result.Configs)
	} else {
		artifact := ""
		if len(artifacts) == 1 {
			artifact = artifacts[0]
		}
		result.Config, err = reader.Config(artifact)
		if err != nil {
			return ConfigResult{}, wrapConfigError(err, "failed to resolve config")
		}
		value = result.Config.ToMap()
	}

	if query := strings.TrimSpace(req.Query); query != "" {
		matches, err := adapters.Query(value, query)
		if err != nil {
			return ConfigResult{}, err
		}
		value = matches
		if len(matches) == 1 {
			value = matches[0]
		}
	}
	result.Output, err = adapters.Render(value, strings.TrimSpace(req.Format))
	if err != nil {
		return ConfigResult{}, err
	}
	return result, nil
}

// Artifact reads the source coordinates of one section without applying
// the build option rules.
func (s Service) Artifact(_ context.Context, req ArtifactRequest) (ArtifactResult, error) {
	st, _, err := s.loadStore(req.ConfigPath)
	if err != nil {
		return ArtifactResult{}, err
	}
	section := strings.TrimSpace(req.Section)
	cfg, err := core.ReadArtifactConfig(st, section)
	if err != nil {
		return ArtifactResult{}, wrapConfigError(err, "failed to read artifact "+section)
	}
	output, err := adapters.Render(cfg.ToMap(), strings.TrimSpace(req.Format))
	if err != nil {
		return ArtifactResult{}, err
	}
	return ArtifactResult{Artifact: cfg, Output: output}, nil
}

func requestedArtifacts(req ConfigRequest) []string {
	var out []string
	for _, artifact := range append([]string{req.Artifact}, req.Artifacts...) {
		if artifact = strings.TrimSpace(artifact); artifact != "" {
			out = append(out, artifact)
		}
	}
	return out
}

func renderConfigs(configs map[string]types.ResolvedConfig) map[string]any {
	out := make(map[string]any, len(configs))
	for name, cfg := range configs {
		out[name] = cfg.ToMap()
	}
	return out
}
