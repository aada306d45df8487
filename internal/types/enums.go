package types

type SectionType string

const (
	SectionTypeMaven          SectionType = "maven"
	SectionTypeWrapper        SectionType = "wrapper"
	SectionTypeCommon         SectionType = "common"
	SectionTypeBomBuilderMeta SectionType = "bom-builder-meta"
)

// PomOverride names one of the global overrides handed to the pom
// manipulator extension.
type PomOverride string

const (
	PomOverrideDependencyManagement PomOverride = "dependencyManagement"
	PomOverridePluginManagement     PomOverride = "pluginManagement"
	PomOverridePropertyManagement   PomOverride = "propertyManagement"
	PomOverrideRepositoryInjection  PomOverride = "repositoryInjection"
	PomOverrideProfileInjection     PomOverride = "profileInjection"
	PomOverrideRepoReportingRemoval PomOverride = "repoReportingRemoval"
	PomOverrideSkipDeployment       PomOverride = "skipDeployment"
	PomOverrideOverrideTransitive   PomOverride = "overrideTransitive"
)

// PomOverrides lists every override in the order they are read and mirrored.
var PomOverrides = []PomOverride{
	PomOverrideDependencyManagement,
	PomOverridePluginManagement,
	PomOverridePropertyManagement,
	PomOverrideProfileInjection,
	PomOverrideRepoReportingRemoval,
	PomOverrideRepositoryInjection,
	PomOverrideSkipDeployment,
	PomOverrideOverrideTransitive,
}

// PropertyName is the artifact property key that mirrors the override.
func (o PomOverride) PropertyName() string {
	switch o {
	case PomOverrideRepoReportingRemoval:
		return "repo-reporting-removal"
	case PomOverrideSkipDeployment:
		return "enforce-skip"
	default:
		return string(o)
	}
}

// PropertyDisableManipulation suppresses override mirroring for an artifact.
const PropertyDisableManipulation = "manipulation.disable"

// PropertyConfigSHA is filled with the config file commit when left empty.
const PropertyConfigSHA = "ip.config.sha"
