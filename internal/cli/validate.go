package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pnc-buildconfig/internal/app"
	"pnc-buildconfig/internal/types"
)

type validateOptions struct {
	File string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a build configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Build configuration file")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ConfigPath: resolveString(cmd, opts.File, "file", "file"),
		Defaults:   resolveDefaults(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %s (%d artifacts)\n", result.ConfigName, len(result.Artifacts))
	return nil
}

// resolveDefaults collects the process defaults from the root flags,
// falling back to settings and environment.
func resolveDefaults(cmd *cobra.Command) types.ConfigDefaults {
	return types.ConfigDefaults{
		Force:             resolveBool(cmd, boolFlag(cmd, "force"), "force", "force"),
		Scratch:           resolveBool(cmd, boolFlag(cmd, "scratch"), "scratch", "scratch"),
		DebugBuild:        resolveBool(cmd, boolFlag(cmd, "debug-build"), "debug_build", "debug-build"),
		ErrorsBuild:       resolveBool(cmd, boolFlag(cmd, "errors-build"), "errors_build", "errors-build"),
		PomManipulatorExt: resolveString(cmd, stringFlag(cmd, "pom-manipulator-ext"), "pom_manipulator_ext", "pom-manipulator-ext"),
	}
}

func boolFlag(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if value, err := cmd.Flags().GetBool(name); err == nil {
		return value
	}
	value, _ := cmd.PersistentFlags().GetBool(name)
	return value
}

func stringFlag(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if value, err := cmd.Flags().GetString(name); err == nil {
		return value
	}
	value, _ := cmd.PersistentFlags().GetString(name)
	return value
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
