package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return ValidateResult{}, err
	}
	if _, err := reader.BuildPlan(ctx); err != nil {
		return ValidateResult{}, wrapConfigError(err, "invalid build configuration")
	}
	log.Ctx(ctx).Debug().Str("config", reader.ConfigName()).Msg("build configuration valid")
	return ValidateResult{
		ConfigName: reader.ConfigName(),
		Artifacts:  reader.Artifacts(),
	}, nil
}
