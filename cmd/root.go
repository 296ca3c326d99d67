package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/objfile/cmd/objfile"
)

var (
	cfgFile string
	logFile string
	verbose bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "objfile",
	Short: "Reads and introspects ELF object files and their DWARF debug info",
	Long: `objfile decodes ELF32/ELF64 object files and their DWARF v4/v5 debug
sections: headers, sections, segments, symbols, notes, ARM EABI attributes,
the DIE tree, expressions, and the line-number program header, backed by a
hash-gated on-disk cache.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.objfile.yaml)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write structured logs to this file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable colorized output")
	RootCmd.PersistentFlags().String("cache-dir", "", "directory for .prgdb cache files (default: alongside the input file)")
	viper.BindPFlag("no_color", RootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("cache_dir", RootCmd.PersistentFlags().Lookup("cache-dir"))

	RootCmd.AddCommand(
		objfile.InspectCmd,
		objfile.QueryCmd,
		objfile.DwarfCmd,
		objfile.ReplCmd,
		objfile.ExploreCmd,
	)
	cobra.OnInitialize(initConfig, initLogging)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".objfile")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if viper.GetBool("no_color") {
		color.NoColor = true
	}
}

// initLogging installs the default slog logger: human-readable text on
// stderr, fanned out to a JSON log file when --log-file is given.
func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		cobra.CheckErr(err)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}
