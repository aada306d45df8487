package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pnc-buildconfig/internal/ports"
	"pnc-buildconfig/internal/types"
)

const planFileName = "build-plan.yaml"

type PlanFileAdapter struct {
	Dir string
}

func NewPlanFileAdapter(dir string) PlanFileAdapter {
	return PlanFileAdapter{Dir: dir}
}

// WritePlan writes the plan as YAML and returns the file path.
func (a PlanFileAdapter) WritePlan(plan types.BuildPlan) (string, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(plan)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal build plan").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, planFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write build plan").
			WithCause(err)
	}
	return path, nil
}

var _ ports.PlanWriterPort = PlanFileAdapter{}
