package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type planOptions struct {
	File      string
	Artifacts []string
	OutputDir string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Order artifacts for building and write the build plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringSliceVar(&opts.Artifacts, "artifact", nil, "Artifacts to plan (all when empty)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for build-plan.yaml")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("artifacts", cmd.Flags().Lookup("artifact"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions) error {
	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Defaults:   resolveDefaults(cmd),
		Artifacts:  resolveStrings(cmd, opts.Artifacts, "artifacts", "artifact"),
		OutputDir:  resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, artifact := range result.Plan.Order {
		fmt.Fprintf(out, "%d. %s\n", i+1, artifact)
	}
	if result.Path != "" {
		fmt.Fprintf(out, "plan written: %s\n", result.Path)
	}
	return nil
}
