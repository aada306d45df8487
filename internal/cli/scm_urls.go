package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

func newScmURLsCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "scm-urls",
		Short: "List the source location of every artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScmURLs(cmd.Context(), cmd, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Build configuration file")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runScmURLs(ctx context.Context, cmd *cobra.Command, file string) error {
	service := newAppService()
	result, err := service.ScmURLs(ctx, app.ScmURLsRequest{
		ConfigPath: resolveString(cmd, file, "file", "file"),
		Defaults:   resolveDefaults(cmd),
	})
	if err != nil {
		return err
	}
	for _, artifact := range slices.Sorted(maps.Keys(result.URLs)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", artifact, result.URLs[artifact])
	}
	return nil
}
