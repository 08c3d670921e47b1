package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/config"
	"github.com/san-kum/lyapunov/internal/physics"
	"github.com/spf13/cobra"
)

var (
	kySpectrum []float64
	kySorted   bool
)

func newKYCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kydim",
		Short: "kaplan-yorke dimension of a spectrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", analysis.KaplanYorke(kySpectrum, kySorted))
			return nil
		},
	}
	cmd.Flags().Float64SliceVarP(&kySpectrum, "spectrum", "s", nil, "exponents, comma separated")
	cmd.Flags().BoolVar(&kySorted, "sorted", false, "the spectrum is already in descending order")
	_ = cmd.MarkFlagRequired("spectrum")
	return cmd
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "list available models and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tDIM\tPARAMS\tPRESETS")
			for _, name := range physics.Names() {
				m, err := physics.New(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, m.StateDim(),
					formatParams(m.GetParams()), strings.Join(config.ListPresets(name), ","))
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models := config.Models()
			if len(args) > 0 {
				if config.ListPresets(args[0]) == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "no presets for %s\n", args[0])
					return nil
				}
				models = args[:1]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tPRESET\tMETHOD\tEXPONENTS\tWINDOWS\tWINDOW\tPARAMS")
			for _, model := range models {
				for _, name := range config.ListPresets(model) {
					p := config.GetPreset(model, name)
					est, err := p.ToAnalysis()
					if err != nil {
						return fmt.Errorf("preset %s/%s: %w", model, name, err)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s\n", model, name, est.Method(),
						est.Exponents, est.Windows, est.Window, formatParams(p.Params))
				}
			}
			return w.Flush()
		},
	}
}

func formatParams(params map[string]float64) string {
	if len(params) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, " ")
}
