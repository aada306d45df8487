package types

import (
	"maps"
	"slices"
)

// BuildOptions carries the per-artifact build knobs passed on to the
// orchestration client. Envs and Properties values are stored quoted.
type BuildOptions struct {
	Envs             map[string]string
	Scratch          bool
	Errors           bool
	Debug            bool
	Packages         []string
	Goals            []string
	JVMOptions       []string
	MavenOptions     []string
	Patches          *string
	Profiles         []string
	Properties       map[string]string
	DefaultRepoGroup *string
}

// ArtifactSpec is the normalized configuration of one buildable section.
type ArtifactSpec struct {
	Artifact       string
	Type           SectionType
	ScmURL         string
	BuildRequires  []string
	DownstreamJobs *string
	PncBuildScript *string
	PncProjectName *string
	SkipTests      *string
	Options        BuildOptions
}

// ArtifactConfig is the lightweight single-section view used by tooling
// that only needs source coordinates, not the full build options.
type ArtifactConfig struct {
	Artifact string
	Package  *string
	Version  string
	ScmURL   *string
	Patches  *string
	Profiles *string
}

// ToMap renders the coordinates with the option names used in the config
// file. Unset optional fields are omitted.
func (c ArtifactConfig) ToMap() map[string]any {
	out := map[string]any{
		"artifact": c.Artifact,
		"version":  c.Version,
	}
	putString(out, "package", c.Package)
	putString(out, "scmUrl", c.ScmURL)
	putString(out, "patches", c.Patches)
	putString(out, "profiles", c.Profiles)
	return out
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s ArtifactSpec) Clone() ArtifactSpec {
	out := s
	out.BuildRequires = slices.Clone(s.BuildRequires)
	out.DownstreamJobs = cloneString(s.DownstreamJobs)
	out.PncBuildScript = cloneString(s.PncBuildScript)
	out.PncProjectName = cloneString(s.PncProjectName)
	out.SkipTests = cloneString(s.SkipTests)
	out.Options = s.Options.Clone()
	return out
}

func (o BuildOptions) Clone() BuildOptions {
	out := o
	out.Envs = maps.Clone(o.Envs)
	out.Packages = slices.Clone(o.Packages)
	out.Goals = slices.Clone(o.Goals)
	out.JVMOptions = slices.Clone(o.JVMOptions)
	out.MavenOptions = slices.Clone(o.MavenOptions)
	out.Patches = cloneString(o.Patches)
	out.Profiles = slices.Clone(o.Profiles)
	out.Properties = maps.Clone(o.Properties)
	out.DefaultRepoGroup = cloneString(o.DefaultRepoGroup)
	return out
}

func cloneString(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
