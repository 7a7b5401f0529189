// Command flatjson is a thin CLI front end over the flatjson core package:
// parse/validate a file, serialize tokens back to text, pack/unpack the
// binary form, and diff two documents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cliConfig holds the subset of options a user can set via --config (a
// TOML file) or per-command flags; flags always take precedence.
type cliConfig struct {
	Indent     int  `toml:"indent"`
	HexNumbers bool `toml:"hex_numbers"`
	Despaced   bool `toml:"despaced_input"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{Indent: 2}
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "flatjson",
	Short:         "Inspect, serialize and pack flat-token JSON documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file")
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newSerializeCmd())
	rootCmd.AddCommand(newPackCmd())
	rootCmd.AddCommand(newUnpackCmd())
	rootCmd.AddCommand(newDiffCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flatjson:", err)
		os.Exit(1)
	}
}
