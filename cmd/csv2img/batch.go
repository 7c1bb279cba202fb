package main

import (
	"fmt"

	"github.com/OtaniMakoto/CSV2img/internal/fsutil"
	"github.com/OtaniMakoto/CSV2img/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert the configured input file to the configured output file",
	Long: `batch creates the data and output directories if needed, then converts
the configured input (data/from_top_4.csv by default) to the configured
output (output/converted_image.jpg by default).`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	addPipelineFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := fsutil.EnsureDirs(cfg.GetDataDir(), cfg.GetOutputDir()); err != nil {
		return err
	}

	inputPath := cfg.GetInputFile()
	outputPath := cfg.GetOutputFile()
	if !fsutil.Exists(inputPath) {
		return fmt.Errorf("input file %s not found: place the CSV grid there or set input_file in the config", inputPath)
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
