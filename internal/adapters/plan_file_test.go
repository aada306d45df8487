package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pnc-buildconfig/internal/types"
)

func TestPlanFileAdapterWritesYAML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	plan := types.BuildPlan{
		ConfigName: "build",
		ConfigDir:  "/cfg",
		Order:      []string{"org.example.a", "org.example.b"},
		Entries: []types.BuildPlanEntry{
			{Artifact: "org.example.a", ScmURL: "git://a"},
			{Artifact: "org.example.b", ScmURL: "git://b", Dependencies: []string{"org.example.a"}},
		},
	}

	path, err := NewPlanFileAdapter(dir).WritePlan(plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build-plan.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got types.BuildPlan
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, plan.Order, got.Order)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, []string{"org.example.a"}, got.Entries[1].Dependencies)
}
