package types

// ConfigDefaults is the process-supplied overlay applied on top of every
// resolved artifact config. A default can only switch a flag on; it never
// clears a flag the config file already set.
type ConfigDefaults struct {
	Force             bool
	Scratch           bool
	DebugBuild        bool
	ErrorsBuild       bool
	PomManipulatorExt string
}

// PomManipulatorConfig holds the global overrides read from the configured
// pom manipulator extension section.
type PomManipulatorConfig struct {
	Section string
	Values  map[PomOverride]string
}

// ResolvedConfig is the merged view returned for a single artifact. An empty
// Artifact means no artifact was requested and only the global overrides are
// populated.
type ResolvedConfig struct {
	ArtifactSpec
	Force             bool
	PomManipulatorExt string
	Overrides         map[PomOverride]string
}

// ToMap renders the config with the key names the orchestration client
// expects. Optional fields are omitted when unset.
func (c ResolvedConfig) ToMap() map[string]any {
	out := map[string]any{}
	for _, key := range PomOverrides {
		if v, ok := c.Overrides[key]; ok {
			out[string(key)] = v
		}
	}
	if c.Force {
		out["force"] = true
	}
	if c.PomManipulatorExt != "" {
		out["pommanipext"] = c.PomManipulatorExt
	}
	if c.Artifact == "" {
		out["artifact"] = nil
		return out
	}
	out["artifact"] = c.Artifact
	out["type"] = string(c.Type)
	out["scmURL"] = c.ScmURL
	if len(c.BuildRequires) > 0 {
		out["buildrequires"] = toAnySlice(c.BuildRequires)
	}
	if c.DownstreamJobs != nil {
		out["downstreamjobs"] = *c.DownstreamJobs
	} else {
		out["downstreamjobs"] = nil
	}
	putString(out, "pnc.buildScript", c.PncBuildScript)
	putString(out, "pnc.projectName", c.PncProjectName)
	putString(out, "skiptests", c.SkipTests)
	out["options"] = c.Options.toMap()
	return out
}

func (o BuildOptions) toMap() map[string]any {
	out := map[string]any{}
	if o.Envs != nil {
		out["envs"] = toAnyMap(o.Envs)
	}
	if o.Scratch {
		out["scratch"] = true
	}
	if o.Errors {
		out["errors"] = true
	}
	if o.Debug {
		out["debug"] = true
	}
	putList(out, "packages", o.Packages)
	putList(out, "goals", o.Goals)
	putList(out, "jvm_options", o.JVMOptions)
	putList(out, "maven_options", o.MavenOptions)
	putList(out, "profiles", o.Profiles)
	putString(out, "patches", o.Patches)
	if o.Properties != nil {
		out["properties"] = toAnyMap(o.Properties)
	}
	putString(out, "defaultRepoGroup", o.DefaultRepoGroup)
	return out
}

func putString(out map[string]any, key string, value *string) {
	if value != nil {
		out[key] = *value
	}
}

func putList(out map[string]any, key string, values []string) {
	if values != nil {
		out[key] = toAnySlice(values)
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func toAnyMap(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
