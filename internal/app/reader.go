package app

import (
	"context"
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pnc-buildconfig/internal/core"
	"pnc-buildconfig/internal/store"
	"pnc-buildconfig/internal/types"
)

func (s Service) loadStore(configPath string) (*store.Store, string, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config file path is required")
	}
	st, err := s.Source.Load(path)
	if err != nil {
		return nil, "", wrapConfigError(err, "failed to load "+path)
	}
	return st, path, nil
}

func (s Service) loadReader(ctx context.Context, configPath string, defaults types.ConfigDefaults) (*core.ConfigReader, error) {
	st, path, err := s.loadStore(configPath)
	if err != nil {
		return nil, err
	}
	reader, err := core.NewConfigReader(ctx, path, st, defaults, s.Commits)
	if err != nil {
		return nil, wrapConfigError(err, "invalid build configuration "+path)
	}
	return reader, nil
}

// wrapConfigError gives configuration errors the errbuilder code of their
// kind. Anything else is returned unchanged.
func wrapConfigError(err error, msg string) error {
	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		return err
	}
	return errbuilder.New().
		WithCode(cfgErr.Code()).
		WithMsg(msg + ": " + cfgErr.Error()).
		WithCause(err)
}
