package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
)

type valueOptions struct {
	File    string
	Section string
	Option  string
}

func newValueCommand() *cobra.Command {
	opts := valueOptions{}
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Print a single interpolated option",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValue(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	cmd.Flags().StringVar(&opts.Section, "section", "", "Section name")
	cmd.Flags().StringVar(&opts.Option, "option", "", "Option name")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runValue(ctx context.Context, cmd *cobra.Command, opts valueOptions) error {
	service := newAppService()
	result, err := service.Value(ctx, app.ValueRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Section:    opts.Section,
		Option:     opts.Option,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Value)
	return nil
}
