package app

import (
	"context"
	"strings"
)

func (s Service) Dependencies(ctx context.Context, req DependenciesRequest) (DependenciesResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return DependenciesResult{}, err
	}
	structure, err := reader.DependencyStructure(strings.TrimSpace(req.Artifact), req.IncludeDependencies)
	if err != nil {
		return DependenciesResult{}, wrapConfigError(err, "failed to resolve dependencies")
	}
	return DependenciesResult{Structure: structure}, nil
}

func (s Service) ScmURLs(ctx context.Context, req ScmURLsRequest) (ScmURLsResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return ScmURLsResult{}, err
	}
	return ScmURLsResult{URLs: reader.AllScmURLs()}, nil
}

func (s Service) CheckPackages(ctx context.Context, req CheckPackagesRequest) (CheckPackagesResult, error) {
	reader, err := s.loadReader(ctx, req.ConfigPath, req.Defaults)
	if err != nil {
		return CheckPackagesResult{}, err
	}
	return CheckPackagesResult{Configured: reader.IsPackageConfigured(strings.TrimSpace(req.Packages))}, nil
}
