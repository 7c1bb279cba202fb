package main

import (
	"fmt"

	"github.com/OtaniMakoto/CSV2img/internal/grid"
	"github.com/OtaniMakoto/CSV2img/internal/jpeg"
	"github.com/OtaniMakoto/CSV2img/internal/pipeline"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CSV grid to a jet-coloured JPEG",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Input CSV file")
	convertCmd.Flags().StringP("output", "o", "", "Output JPEG file (default: input with .jpg extension)")
	addPipelineFlags(convertCmd)
	convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

// addPipelineFlags registers the flags shared by convert and batch.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Int("quality", jpeg.DefaultQuality, "JPEG quality (0-100)")
	cmd.Flags().String("ragged", "reject", "Rows of unequal length: reject or pad")
	cmd.Flags().Int("scale", 1, "Integer upscale factor (pixels per cell)")
	cmd.Flags().Bool("optimize", false, "Optimize Huffman tables")
	cmd.Flags().Bool("sidecar", false, "Write a JSON description next to the output")
}

// pipelineOptions starts from the config file and applies any flag the user
// set explicitly.
func pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Quality:  cfg.GetQuality(),
		Optimize: cfg.GetOptimize(),
		Ragged:   cfg.GetRagged(),
		Scale:    cfg.GetScale(),
		Sidecar:  cfg.GetSidecar(),
	}

	flags := cmd.Flags()
	if flags.Changed("quality") {
		opts.Quality, _ = flags.GetInt("quality")
	}
	if flags.Changed("ragged") {
		s, _ := flags.GetString("ragged")
		p, err := grid.ParseRaggedPolicy(s)
		if err != nil {
			return opts, err
		}
		opts.Ragged = p
	}
	if flags.Changed("scale") {
		opts.Scale, _ = flags.GetInt("scale")
	}
	if flags.Changed("optimize") {
		opts.Optimize, _ = flags.GetBool("optimize")
	}
	if flags.Changed("sidecar") {
		opts.Sidecar, _ = flags.GetBool("sidecar")
	}
	return opts, opts.Validate()
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = pipeline.DefaultOutputPath(inputPath)
	}

	opts, err := pipelineOptions(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.ConvertFile(inputPath, outputPath, opts)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}
	printResult(cmd, inputPath, outputPath, result, opts)
	return nil
}

func printResult(cmd *cobra.Command, inputPath, outputPath string, result *pipeline.Result, opts pipeline.Options) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted %dx%d grid → %dx%d JPEG\n", result.Rows, result.Cols, result.Width, result.Height)
	fmt.Fprintf(out, "Input:  %s\n", inputPath)
	fmt.Fprintf(out, "Output: %s (%d bytes)\n", outputPath, len(result.Data))
	fmt.Fprintf(out, "Range:  %g .. %g\n", result.Min, result.Max)
	if opts.Sidecar {
		fmt.Fprintf(out, "Sidecar: %s\n", pipeline.SidecarPath(outputPath))
	}
}
