package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type artifactOptions struct {
	File    string
	Section string
	Format  string
}

func newArtifactCommand() *cobra.Command {
	opts := artifactOptions{}
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Print the source coordinates of a section",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runArtifact(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringVar(&opts.Section, "section", "", "Section name")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Output format (yaml, json)")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runArtifact(ctx context.Context, cmd *cobra.Command, opts artifactOptions) error {
	service := newAppService()
	result, err := service.Artifact(ctx, app.ArtifactRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Section:    opts.Section,
		Format:     resolveString(cmd, opts.Format, "format", "format"),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
