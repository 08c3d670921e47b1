package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/san-kum/lyapunov/internal/viz"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	noColor   bool
	themeName string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lyapunov",
		Short:         "lyapunov spectrum estimator for continuous-time systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupOutput(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeDefault.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	rootCmd.AddCommand(newSpectrumCmd(), newSweepCmd(), newKYCmd(), newModelsCmd(), newPresetsCmd())
	return rootCmd
}

// setupOutput installs the tint log handler and the lipgloss color profile.
func setupOutput(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	if _, ok := viz.GetTheme(themeName); !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ThemeNames())
	}

	colorless := noColor
	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		colorless = true
	}
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    colorless,
		}),
	))
	return nil
}

func currentStyles() viz.Styles {
	theme, _ := viz.GetTheme(themeName)
	return viz.NewStyles(theme)
}
