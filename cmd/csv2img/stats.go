package main

import (
	"fmt"

	"github.com/OtaniMakoto/CSV2img/internal/grid"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize the values of a CSV grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("ragged", "", "Rows of unequal length: reject or pad (default from config)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ragged := cfg.GetRagged()
	if cmd.Flags().Changed("ragged") {
		s, _ := cmd.Flags().GetString("ragged")
		p, err := grid.ParseRaggedPolicy(s)
		if err != nil {
			return err
		}
		ragged = p
	}

	g, err := grid.Load(args[0], grid.ParseOptions{Ragged: ragged})
	if err != nil {
		return err
	}
	s := grid.Summarize(g)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Shape:      %d rows x %d cols\n", s.Rows, s.Cols)
	fmt.Fprintf(out, "Finite:     %d\n", s.Finite)
	fmt.Fprintf(out, "Non-finite: %d\n", s.NonFinite)
	fmt.Fprintf(out, "Zeros:      %d\n", s.Zeros)
	if s.Finite == 0 {
		fmt.Fprintln(out, "Range:      undefined (no finite values)")
		return nil
	}
	fmt.Fprintf(out, "Min:        %g\n", s.Min)
	fmt.Fprintf(out, "Max:        %g\n", s.Max)
	fmt.Fprintf(out, "Mean:       %g\n", s.Mean)
	fmt.Fprintf(out, "StdDev:     %g\n", s.StdDev)
	return nil
}
