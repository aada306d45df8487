package ports

import "pnc-buildconfig/internal/types"

type PlanWriterPort interface {
	WritePlan(plan types.BuildPlan) (string, error)
}
