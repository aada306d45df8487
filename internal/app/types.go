package app

import "pnc-buildconfig/internal/types"

type ValidateRequest struct {
	ConfigPath string
	Defaults   types.ConfigDefaults
}

type ValidateResult struct {
	ConfigName string
	Artifacts  []string
}

type ConfigRequest struct {
	ConfigPath string
	Defaults   types.ConfigDefaults
	Artifact   string
	Artifacts  []string
	Format     string
	Query      string
}

// ConfigResult carries Config for a single artifact and Configs, keyed by
// artifact, when several were requested.
type ConfigResult struct {
	Config  types.ResolvedConfig
	Configs map[string]types.ResolvedConfig
	Output  []byte
}

type ArtifactRequest struct {
	ConfigPath string
	Section    string
	Format     string
}

type ArtifactResult struct {
	Artifact types.ArtifactConfig
	Output   []byte
}

type DependenciesRequest struct {
	ConfigPath          string
	Defaults            types.ConfigDefaults
	Artifact            string
	IncludeDependencies bool
}

type DependenciesResult struct {
	Structure types.DependencyStructure
}

type PlanRequest struct {
	ConfigPath string
	Defaults   types.ConfigDefaults
	Artifacts  []string
	OutputDir  string
}

type PlanResult struct {
	Plan types.BuildPlan
	Path string
}

type ScmURLsRequest struct {
	ConfigPath string
	Defaults   types.ConfigDefaults
}

type ScmURLsResult struct {
	URLs map[string]string
}

type ValueRequest struct {
	ConfigPath string
	Section    string
	Option     string
}

type ValueResult struct {
	Value string
}

type CheckPackagesRequest struct {
	ConfigPath string
	Defaults   types.ConfigDefaults
	Packages   string
}

type CheckPackagesResult struct {
	Configured bool
}
