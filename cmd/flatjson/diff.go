package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klauspost/flatjson"
)

func newDiffCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two JSON files structurally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			var cmpMode flatjson.CompareMode
			switch mode {
			case "markup":
				cmpMode = flatjson.CompareMarkupOnly
			case "length":
				cmpMode = flatjson.CompareLengthOnly
			case "full":
				cmpMode = flatjson.CompareFull
			default:
				return fmt.Errorf("unknown --mode %q (want markup, length, or full)", mode)
			}

			leftSrc, err := readFile(args[0])
			if err != nil {
				return err
			}
			rightSrc, err := readFile(args[1])
			if err != nil {
				return err
			}
			left, err := flatjson.Parse(leftSrc, cliCfg.parseOptions()...)
			if err != nil {
				return fmt.Errorf("left: %w", err)
			}
			right, err := flatjson.Parse(rightSrc, cliCfg.parseOptions()...)
			if err != nil {
				return fmt.Errorf("right: %w", err)
			}

			res, leftAt, rightAt := flatjson.Compare(left, right, cmpMode)
			if res == flatjson.CompareOK {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s at left token %d, right token %d\n", res, leftAt.Index(), rightAt.Index())
			return fmt.Errorf("documents differ: %s", res)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "full", "comparison mode: markup, length, or full")
	return cmd
}
