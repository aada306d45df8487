package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PNC_BUILDCONFIG"

type RootConfig struct {
	ConfigFile        string
	LogLevel          string
	Force             bool
	Scratch           bool
	DebugBuild        bool
	ErrorsBuild       bool
	PomManipulatorExt string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:          "pnc-buildconfig",
		Short:        "Resolve build configurations into ordered artifact builds",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Settings file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.BoolVar(&cfg.Force, "force", false, "Force rebuilds of every artifact")
	flags.BoolVar(&cfg.Scratch, "scratch", false, "Run scratch builds")
	flags.BoolVar(&cfg.DebugBuild, "debug-build", false, "Run builds with maven debug output")
	flags.BoolVar(&cfg.ErrorsBuild, "errors-build", false, "Run builds with maven error output")
	flags.StringVar(&cfg.PomManipulatorExt, "pom-manipulator-ext", "", "Section holding the pom manipulator overrides")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("force", flags.Lookup("force"))
	_ = viper.BindPFlag("scratch", flags.Lookup("scratch"))
	_ = viper.BindPFlag("debug_build", flags.Lookup("debug-build"))
	_ = viper.BindPFlag("errors_build", flags.Lookup("errors-build"))
	_ = viper.BindPFlag("pom_manipulator_ext", flags.Lookup("pom-manipulator-ext"))

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newDepsCommand())
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newScmURLsCommand())
	cmd.AddCommand(newValueCommand())
	cmd.AddCommand(newArtifactCommand())
	cmd.AddCommand(newCheckCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("pnc-buildconfig")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/pnc-buildconfig")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging logs to stderr so that rendered output on stdout stays
// machine readable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.Contains(message, "cycle:") {
			return 3
		}
		return 4
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
