package app

import (
	"pnc-buildconfig/internal/adapters"
	"pnc-buildconfig/internal/ports"
)

type Service struct {
	Source     ports.ConfigSourcePort
	Commits    ports.CommitResolverPort
	PlanWriter func(dir string) ports.PlanWriterPort
}

func NewService() Service {
	return Service{
		Source:  adapters.NewIniSourceAdapter(),
		Commits: adapters.NewGitCommitAdapter(),
		PlanWriter: func(dir string) ports.PlanWriterPort {
			return adapters.NewPlanFileAdapter(dir)
		},
	}
}
