package core

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnc-buildconfig/internal/adapters"
	"pnc-buildconfig/internal/ports"
	"pnc-buildconfig/internal/types"
)

const (
	correctConfig = "../../fixtures/cfg_correct.ini"
	pomConfig     = "../../fixtures/cfg_pommanip.ini"
)

type fakeCommits struct {
	commit string
	err    error
	dir    string
	file   string
	calls  int
}

func (f *fakeCommits) ResolveCommitID(_ context.Context, dir string, fileName string) (string, error) {
	f.calls++
	f.dir = dir
	f.file = fileName
	return f.commit, f.err
}

func loadReader(ctx context.Context, t *testing.T, path string, defaults types.ConfigDefaults, commits ports.CommitResolverPort) (*ConfigReader, error) {
	t.Helper()
	st, err := adapters.NewIniSourceAdapter().Load(path)
	require.NoError(t, err)
	return NewConfigReader(ctx, path, st, defaults, commits)
}

func readerFromText(t *testing.T, path, text string, defaults types.ConfigDefaults, commits ports.CommitResolverPort) (*ConfigReader, error) {
	t.Helper()
	st, err := adapters.ParseINI([]byte(text))
	require.NoError(t, err)
	return NewConfigReader(t.Context(), path, st, defaults, commits)
}

func countWarnings(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), `"level":"warn"`)
}

func TestConfigReaderCorrectConfig(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(t.Context())

	reader, err := loadReader(ctx, t, correctConfig, types.ConfigDefaults{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, countWarnings(&buf), "only the wrapper section is reported")
	assert.Equal(t, "cfg_correct", reader.ConfigName())

	structure, err := reader.DependencyStructure("", false)
	require.NoError(t, err)
	assert.Len(t, structure.Artifacts, 6)
	assert.NotContains(t, structure.Artifacts, "org.example.test-wrapper")
	assert.Equal(t, []string{"org.example.test-a", "org.example.test-d"}, structure.Dependencies["org.example.test-e"])
	assert.Equal(t, []string{"org.example.test-a", "org.example.test-b", "c-wrapper"}, structure.Dependencies["org.example.test-c"])

	cfg, err := reader.Config("org.example.test-a")
	require.NoError(t, err)
	assert.Equal(t, "org.example.test-a", cfg.Artifact)
	assert.Equal(t, types.SectionTypeMaven, cfg.Type)
	assert.Equal(t, "git://git.example.com/users/dev/maven-deptest.git?a#74b3dd7", cfg.ScmURL)
	require.NotNil(t, cfg.Options.Patches)
	assert.Empty(t, *cfg.Options.Patches)
	assert.Equal(t, []string{"profile1", "profile2", "profile3"}, cfg.Options.Profiles)
	assert.Equal(t, []string{"clean", "install"}, cfg.Options.Goals)
	assert.Equal(t, []string{"pkg-a", "pkg-b"}, cfg.Options.Packages)
	assert.Equal(t, []string{"-Xmx1g", "-Xms256m"}, cfg.Options.JVMOptions)
	assert.Equal(t, map[string]string{
		"name":  `"value"`,
		"name2": `"value with spaces"`,
	}, cfg.Options.Properties)
	assert.Equal(t, map[string]string{
		"JAVA_HOME":  `"/usr/lib/jvm/java-11"`,
		"MAVEN_OPTS": `"-Dfoo,bar"`,
	}, cfg.Options.Envs)

	expected := map[string][]string{
		"org.example.test-a": {},
		"org.example.test-b": {"org.example.test-a"},
		"org.example.test-c": {"org.example.test-b", "c-wrapper"},
		"org.example.test-d": {},
		"org.example.test-e": {"org.example.test-a", "org.example.test-d"},
		"c-wrapper":          {},
	}
	if diff := cmp.Diff(expected, reader.PackagesAndDependencies()); diff != "" {
		t.Fatalf("unexpected dependencies (-want +got):\n%s", diff)
	}
}

func TestConfigReaderFailures(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		text     string
		defaults types.ConfigDefaults
		kind     error
	}{
		{name: "section without group separator", path: "../../fixtures/cfg_badsectionname.ini", kind: types.ErrInvalidArtifactName},
		{name: "missing scm url", path: "../../fixtures/cfg_missingurl.ini", kind: types.ErrMissingRequiredOption},
		{name: "requirement not configured", path: "../../fixtures/cfg_requiresnotincfg.ini", kind: types.ErrUnresolvedDependency},
		{
			name: "empty scm url",
			text: "[org.example.a]\nscmurl =\n",
			kind: types.ErrMissingRequiredOption,
		},
		{
			name: "dependency cycle",
			text: "[org.example.a]\nscmurl = git://a\nbuildrequires = org.example.b\n\n[org.example.b]\nscmurl = git://b\nbuildrequires = org.example.a\n",
			kind: types.ErrCyclicDependency,
		},
		{
			name: "unresolvable interpolation",
			text: "[org.example.a]\nscmurl = ${nowhere}/a.git\n",
			kind: types.ErrInterpolationMissingVariable,
		},
		{
			name:     "pom manipulator section missing",
			text:     "[org.example.a]\nscmurl = git://a\n",
			defaults: types.ConfigDefaults{PomManipulatorExt: "pme"},
			kind:     types.ErrMissingPomManipulatorSection,
		},
		{
			name: "config commit without resolver",
			text: "[org.example.a]\nscmurl = git://a\nproperties = ip.config.sha=\n",
			kind: types.ErrMissingRequiredOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.path != "" {
				_, err = loadReader(t.Context(), t, tt.path, tt.defaults, nil)
			} else {
				_, err = readerFromText(t, "/cfg/build.ini", tt.text, tt.defaults, nil)
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestConfigReaderUnknownArtifact(t *testing.T) {
	reader, err := loadReader(t.Context(), t, correctConfig, types.ConfigDefaults{}, nil)
	require.NoError(t, err)

	_, err = reader.Config("org.example.nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownArtifact))

	_, err = reader.DependencyStructure("org.example.nope", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownArtifact))
}

func TestConfigIsIdempotent(t *testing.T) {
	reader, err := loadReader(t.Context(), t, pomConfig, types.ConfigDefaults{PomManipulatorExt: "pme-ext"}, nil)
	require.NoError(t, err)

	first, err := reader.Config("org.example.core-lib")
	require.NoError(t, err)
	first.Options.Properties["mutated"] = "yes"
	first.Overrides[types.PomOverrideOverrideTransitive] = "true"
	first.Options.MavenOptions[0] = "changed"

	second, err := reader.Config("org.example.core-lib")
	require.NoError(t, err)
	third, err := reader.Config("org.example.core-lib")
	require.NoError(t, err)
	assert.NotContains(t, second.Options.Properties, "mutated")
	assert.NotContains(t, second.Overrides, types.PomOverrideOverrideTransitive)
	assert.Equal(t, "-B", second.Options.MavenOptions[0])
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("config changed between calls (-first +second):\n%s", diff)
	}
}

func TestDefaultsOnlySwitchFlagsOn(t *testing.T) {
	reader, err := loadReader(t.Context(), t, pomConfig, types.ConfigDefaults{PomManipulatorExt: "pme-ext"}, nil)
	require.NoError(t, err)

	// scratch is set in the file and survives defaults that leave it off.
	cfg, err := reader.Config("org.example.core-lib")
	require.NoError(t, err)
	assert.True(t, cfg.Options.Scratch)
	assert.False(t, cfg.Options.Errors)
	assert.False(t, cfg.Force)
	assert.Equal(t, []string{"-B", "-U", "--debug"}, cfg.Options.MavenOptions)

	reader, err = loadReader(t.Context(), t, pomConfig, types.ConfigDefaults{
		Force:             true,
		Scratch:           true,
		DebugBuild:        true,
		ErrorsBuild:       true,
		PomManipulatorExt: "pme-ext",
	}, nil)
	require.NoError(t, err)

	cfg, err = reader.Config("org.example.app-server")
	require.NoError(t, err)
	assert.True(t, cfg.Force)
	assert.True(t, cfg.Options.Scratch)
	assert.True(t, cfg.Options.Debug)
	assert.True(t, cfg.Options.Errors)
	assert.Equal(t, []string{"--debug"}, cfg.Options.MavenOptions)

	global, err := reader.Config("")
	require.NoError(t, err)
	assert.True(t, global.Force)
	assert.False(t, global.Options.Scratch)
	assert.Nil(t, global.ToMap()["artifact"])
}

func TestPomManipulatorOverridesAreMirrored(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(t.Context())

	reader, err := loadReader(ctx, t, pomConfig, types.ConfigDefaults{PomManipulatorExt: "pme-ext"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, countWarnings(&buf))
	assert.Equal(t, []string{
		"org.example.common-parent",
		"org.example.core-lib",
		"org.example.app-server",
	}, reader.Artifacts())

	global, err := reader.Config("")
	require.NoError(t, err)
	assert.Equal(t, "pme-ext", global.PomManipulatorExt)
	assert.Equal(t, map[types.PomOverride]string{
		types.PomOverrideDependencyManagement: "org.example.bom:dependency-bom:1.2.0",
		types.PomOverridePluginManagement:     "org.example.bom:plugin-bom:9.9",
		types.PomOverrideRepoReportingRemoval: "true",
		types.PomOverrideSkipDeployment:       "false",
	}, global.Overrides)

	cfg, err := reader.Config("org.example.core-lib")
	require.NoError(t, err)
	assert.Equal(t, "git://git.example.com/products/core-lib.git#3.1", cfg.ScmURL)
	assert.Equal(t, "org.example.custom:bom:2.0", cfg.Overrides[types.PomOverrideDependencyManagement])
	assert.Equal(t, map[string]string{
		"dependencyManagement":   `"org.example.custom:bom:2.0"`,
		"pluginManagement":       `"org.example.bom:plugin-bom:9.9"`,
		"repo-reporting-removal": `"true"`,
		"enforce-skip":           `"false"`,
		"build.id":               `"$BUILD_ID"`,
		"singular":               `""`,
	}, cfg.Options.Properties)

	// The global value stays untouched for other artifacts.
	common, err := reader.Config("org.example.common-parent")
	require.NoError(t, err)
	assert.Equal(t, "org.example.bom:dependency-bom:1.2.0", common.Overrides[types.PomOverrideDependencyManagement])
	assert.Equal(t, `"org.example.bom:dependency-bom:1.2.0"`, common.Options.Properties["dependencyManagement"])
}

func TestManipulationDisableSkipsMirroring(t *testing.T) {
	reader, err := loadReader(t.Context(), t, pomConfig, types.ConfigDefaults{PomManipulatorExt: "pme-ext"}, nil)
	require.NoError(t, err)

	cfg, err := reader.Config("org.example.app-server")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"manipulation.disable": `"true"`,
		"enforce-skip":         `"true"`,
	}, cfg.Options.Properties)
	assert.Equal(t, "false", cfg.Overrides[types.PomOverrideSkipDeployment])
	require.NotNil(t, cfg.DownstreamJobs)
	assert.Equal(t, "app-server-tests", *cfg.DownstreamJobs)
	require.NotNil(t, cfg.Options.DefaultRepoGroup)
	assert.Equal(t, "product-builds", *cfg.Options.DefaultRepoGroup)
}

func TestConfigCommitIsResolved(t *testing.T) {
	commits := &fakeCommits{commit: "0123456789abcdef"}
	text := "[org.example.a]\nscmurl = git://a\nproperties = ip.config.sha=,other=1\n\n[org.example.b]\nscmurl = git://b\nproperties = ip.config.sha=pinned\n"

	reader, err := readerFromText(t, "/cfg/products/build.ini", text, types.ConfigDefaults{}, commits)
	require.NoError(t, err)
	assert.Equal(t, 1, commits.calls)
	assert.Equal(t, "/cfg/products", commits.dir)
	assert.Equal(t, "build.ini", commits.file)

	cfg, err := reader.Config("org.example.a")
	require.NoError(t, err)
	assert.Equal(t, `"0123456789abcdef"`, cfg.Options.Properties[types.PropertyConfigSHA])
	assert.Equal(t, `"1"`, cfg.Options.Properties["other"])

	pinned, err := reader.Config("org.example.b")
	require.NoError(t, err)
	assert.Equal(t, `"pinned"`, pinned.Options.Properties[types.PropertyConfigSHA])
}

func TestConfigCommitResolverFailure(t *testing.T) {
	commits := &fakeCommits{err: errors.New("not a repository")}
	_, err := readerFromText(t, "/cfg/build.ini", "[org.example.a]\nscmurl = git://a\nproperties = ip.config.sha=\n", types.ConfigDefaults{}, commits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a repository")
}

func TestAllScmURLsSkipsSharedSections(t *testing.T) {
	reader, err := loadReader(t.Context(), t, pomConfig, types.ConfigDefaults{PomManipulatorExt: "pme-ext"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"org.example.core-lib":   "git://git.example.com/products/core-lib.git#3.1",
		"org.example.app-server": "git://git.example.com/products/app-server.git#main",
	}, reader.AllScmURLs())
}

func TestDependencyStructureForArtifact(t *testing.T) {
	reader, err := loadReader(t.Context(), t, correctConfig, types.ConfigDefaults{}, nil)
	require.NoError(t, err)

	only, err := reader.DependencyStructure("org.example.test-c", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.example.test-c"}, only.Artifacts)

	all, err := reader.DependencyStructure("org.example.test-c", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.example.test-c", "org.example.test-a", "org.example.test-b", "c-wrapper"}, all.Artifacts)
	assert.Equal(t, []string{"org.example.test-a"}, all.Dependencies["org.example.test-b"])
	assert.Empty(t, all.Dependencies["c-wrapper"])
}

func TestDependencyStructureListsTransitiveDependencies(t *testing.T) {
	text := `[org.example.a]
scmurl = git://a

[org.example.b]
scmurl = git://b
buildrequires = org.example.a

[org.example.c]
scmurl = git://c
buildrequires = org.example.b

[org.example.d]
scmurl = git://d
buildrequires = org.example.c
`
	reader, err := readerFromText(t, "/cfg/build.ini", text, types.ConfigDefaults{}, nil)
	require.NoError(t, err)

	structure, err := reader.DependencyStructure("org.example.d", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.example.d", "org.example.a", "org.example.b", "org.example.c"}, structure.Artifacts)
	assert.Equal(t, []string{"org.example.a", "org.example.b", "org.example.c"}, structure.Dependencies["org.example.d"])
	assert.Equal(t, []string{"org.example.a", "org.example.b"}, structure.Dependencies["org.example.c"])
	assert.Equal(t, []string{"org.example.a"}, structure.Dependencies["org.example.b"])
	assert.Empty(t, structure.Dependencies["org.example.a"])

	whole, err := reader.DependencyStructure("", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.example.a", "org.example.b"}, whole.Dependencies["org.example.c"])
}

func TestConfigsResolvesEachArtifact(t *testing.T) {
	reader, err := loadReader(t.Context(), t, correctConfig, types.ConfigDefaults{Force: true}, nil)
	require.NoError(t, err)

	configs, err := reader.Configs([]string{"org.example.test-a", "org.example.test-b"})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "org.example.test-a", configs["org.example.test-a"].Artifact)
	assert.Equal(t, []string{"org.example.test-a"}, configs["org.example.test-b"].BuildRequires)
	assert.True(t, configs["org.example.test-b"].Force)

	single, err := reader.Config("org.example.test-b")
	require.NoError(t, err)
	if diff := cmp.Diff(single, configs["org.example.test-b"]); diff != "" {
		t.Fatalf("batch config differs from single config (-single +batch):\n%s", diff)
	}

	_, err = reader.Configs([]string{"org.example.test-a", "org.example.nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownArtifact))
}

func TestBuildPlan(t *testing.T) {
	reader, err := loadReader(t.Context(), t, correctConfig, types.ConfigDefaults{}, nil)
	require.NoError(t, err)

	plan, err := reader.BuildPlan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"org.example.test-a",
		"org.example.test-b",
		"c-wrapper",
		"org.example.test-c",
		"org.example.test-d",
		"org.example.test-e",
	}, plan.Order)
	require.Len(t, plan.Entries, 6)
	assert.Equal(t, "org.example.test-a", plan.Entries[0].Config["artifact"])

	partial, err := reader.BuildPlan(t.Context(), "org.example.test-e")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.example.test-a", "org.example.test-d", "org.example.test-e"}, partial.Order)
}

func TestIsPackageConfigured(t *testing.T) {
	reader, err := loadReader(t.Context(), t, correctConfig, types.ConfigDefaults{}, nil)
	require.NoError(t, err)

	assert.True(t, reader.IsPackageConfigured("org.example.test-a"))
	assert.True(t, reader.IsPackageConfigured("org.example.test-a,c-wrapper"))
	assert.False(t, reader.IsPackageConfigured("org.example.test-a,org.example.test-wrapper"))
	assert.False(t, reader.IsPackageConfigured(""))
}

func TestResolvedConfigToMap(t *testing.T) {
	reader, err := readerFromText(t, "/cfg/build.ini",
		"[org.example.a]\nscmurl = git://a\ngoals = install\npnc.buildScript = mvn deploy\n",
		types.ConfigDefaults{Force: true}, nil)
	require.NoError(t, err)

	cfg, err := reader.Config("org.example.a")
	require.NoError(t, err)
	expected := map[string]any{
		"artifact":        "org.example.a",
		"type":            "maven",
		"scmURL":          "git://a",
		"downstreamjobs":  nil,
		"pnc.buildScript": "mvn deploy",
		"force":           true,
		"options": map[string]any{
			"goals":      []any{"install"},
			"properties": map[string]any{},
		},
	}
	if diff := cmp.Diff(expected, cfg.ToMap()); diff != "" {
		t.Fatalf("unexpected map (-want +got):\n%s", diff)
	}
}

func TestConfigDir(t *testing.T) {
	assert.Equal(t, "/cfg/dir", configDir("/cfg/dir/build.ini"))
	assert.NotEqual(t, ".", configDir("build.ini"))
}
