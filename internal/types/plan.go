package types

// DependencyStructure lists artifacts and, per artifact, its dependencies
// in build order.
type DependencyStructure struct {
	Artifacts    []string
	Dependencies map[string][]string
}

type BuildPlanEntry struct {
	Artifact     string         `yaml:"artifact" json:"artifact"`
	ScmURL       string         `yaml:"scm_url" json:"scm_url"`
	Dependencies []string       `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Config       map[string]any `yaml:"config" json:"config"`
}

// BuildPlan is the ordered artifact sequence handed to the orchestration
// client. Every entry appears after all of its dependencies.
type BuildPlan struct {
	ConfigName string           `yaml:"config_name" json:"config_name"`
	ConfigDir  string           `yaml:"config_dir" json:"config_dir"`
	Order      []string         `yaml:"order" json:"order"`
	Entries    []BuildPlanEntry `yaml:"entries" json:"entries"`
}
