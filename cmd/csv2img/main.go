package main

import (
	"fmt"
	"log"
	"os"

	"github.com/OtaniMakoto/CSV2img/internal/config"
	"github.com/OtaniMakoto/CSV2img/internal/monitoring"
	"github.com/spf13/cobra"
)

// cfg is loaded from --config before any subcommand runs.
var cfg = config.Empty()

var rootCmd = &cobra.Command{
	Use:               "csv2img",
	Short:             "Render a numeric CSV grid as a jet false-colour JPEG",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "JSON config file")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress diagnostic logging")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		monitoring.SetLogger(nil)
	} else {
		monitoring.SetLogger(log.Printf)
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg = config.Empty()
		return nil
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded
	monitoring.Logf("loaded config %s", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
