package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type configOptions struct {
	File      string
	Artifacts []string
	Format    string
	Query     string
}

func newConfigCommand() *cobra.Command {
	opts := configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration of one or more artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringSliceVar(&opts.Artifacts, "artifact", nil, "Artifact section, repeatable (global overrides when empty)")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "JSONPath expression selecting part of the config")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runConfig(ctx context.Context, cmd *cobra.Command, opts configOptions) error {
	service := newAppService()
	result, err := service.Config(ctx, app.ConfigRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Defaults:   resolveDefaults(cmd),
		Artifacts:  opts.Artifacts,
		Format:     resolveString(cmd, opts.Format, "format", "format"),
		Query:      opts.Query,
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
