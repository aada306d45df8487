package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Plan orders the requested artifacts for building and, with an output
// directory, writes the plan there.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return PlanResult{}, err
	}
	var artifacts []string
	for _, artifact := range req.Artifacts {
		if artifact = strings.TrimSpace(artifact); artifact != "" {
			artifacts = append(artifacts, artifact)
		}
	}
	plan, err := reader.BuildPlan(ctx, artifacts...)
	if err != nil {
		return PlanResult{}, wrapConfigError(err, "failed to plan build")
	}
	result := PlanResult{Plan: plan}

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return result, nil
	}
	if s.PlanWriter == nil {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no plan writer configured")
	}
	path, err := s.PlanWriter(outputDir).WritePlan(plan)
	if err != nil {
		return PlanResult{}, err
	}
	log.Ctx(ctx).Info().Str("path", path).Int("artifacts", len(plan.Order)).Msg("build plan written")
	result.Path = path
	return result, nil
}
