package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type checkOptions struct {
	File     string
	Packages string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every listed package is configured",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringVar(&opts.Packages, "packages", "", "Comma separated artifact names")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.CheckPackages(ctx, app.CheckPackagesRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Defaults:   resolveDefaults(cmd),
		Packages:   opts.Packages,
	})
	if err != nil {
		return err
	}
	if !result.Configured {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("not every package of %q is configured", opts.Packages))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "configured")
	return nil
}
