package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/registry"
)

var (
	flagConfigPreset  string
	flagConfigMode    string
	flagConfigDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a round would use, as YAML. Redirect it to
~/.tower/configs/tower.yaml to start customising.

Examples:
  tower config
  tower config --preset hard
  tower config --mode zen
  tower config --default > ~/.tower/configs/tower.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPreset, "preset", "", "Apply a difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().StringVar(&flagConfigMode, "mode", "", "Apply a game mode")
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg := loadConfig(flagConfigPreset)
	if flagConfigMode != "" {
		m, err := registry.Lookup(flagConfigMode)
		if err != nil {
			fail("%v", err)
		}
		cfg = m.Configure(cfg)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
