package main

import (
	"fmt"
	"os"

	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect a JPEG's dimensions and encoding",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := jpeg.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	mode := "baseline"
	if info.Progressive {
		mode = "progressive"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Components:  %d\n", info.NumComponents)
	fmt.Fprintf(out, "Color space: %s\n", info.ColorSpace)
	fmt.Fprintf(out, "Sampling:    %s\n", info.Sampling)
	fmt.Fprintf(out, "Mode:        %s\n", mode)
	fmt.Fprintf(out, "File size:   %d bytes (%.1f KB)\n", len(data), float64(len(data))/1024)
	return nil
}
