package main

import (
	"fmt"
	"image/color"

	"github.com/OtaniMakoto/CSV2img/internal/colormap"
	"github.com/spf13/cobra"
)

var colormapCmd = &cobra.Command{
	Use:   "colormap",
	Short: "Print the jet lookup table as index,r,g,b",
	Args:  cobra.NoArgs,
	RunE:  runColormap,
}

func init() {
	colormapCmd.Flags().Int("steps", 0, "Sample this many evenly spaced colours instead of the full table")
	rootCmd.AddCommand(colormapCmd)
}

func runColormap(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "index,r,g,b")
	if steps == 0 {
		for i, c := range colormap.Table() {
			fmt.Fprintf(out, "%d,%d,%d,%d\n", i, c[0], c[1], c[2])
		}
		return nil
	}
	if steps < 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	for i, c := range colormap.NewJet().Palette(steps).Colors() {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		fmt.Fprintf(out, "%d,%d,%d,%d\n", i, nc.R, nc.G, nc.B)
	}
	return nil
}
