package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type depsOptions struct {
	File                string
	Artifact            string
	IncludeDependencies bool
}

func newDepsCommand() *cobra.Command {
	opts := depsOptions{}
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List artifacts with their dependencies in build order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeps(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringVar(&opts.Artifact, "artifact", "", "Only describe this artifact")
	cmd.Flags().BoolVar(&opts.IncludeDependencies, "include-dependencies", false, "Also describe each dependency of --artifact")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runDeps(ctx context.Context, cmd *cobra.Command, opts depsOptions) error {
	service := newAppService()
	result, err := service.Dependencies(ctx, app.DependenciesRequest{
		ConfigPath:          resolveString(cmd, opts.File, "file", "file"),
		Defaults:            resolveDefaults(cmd),
		Artifact:            opts.Artifact,
		IncludeDependencies: opts.IncludeDependencies,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, artifact := range result.Structure.Artifacts {
		deps := result.Structure.Dependencies[artifact]
		if len(deps) == 0 {
			fmt.Fprintf(out, "%s\n", artifact)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", artifact, strings.Join(deps, " "))
	}
	return nil
}
