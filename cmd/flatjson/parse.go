package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klauspost/flatjson"
)

func newParseCmd() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JSON file and report its token count, or an error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			src, err := readFile(path)
			if err != nil {
				return err
			}
			cliCfg, err := loadCLIConfig()
			if err != nil {
				return err
			}
			doc, err := flatjson.Parse(src, cliCfg.parseOptions()...)
			if err != nil {
				if pe, ok := err.(*flatjson.ParseError); ok {
					fmt.Fprintln(cmd.ErrOrStderr(), pe.Diagnostic())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tokens, root type %s\n", len(doc.Tokens), doc.Root().Type())
			if stats {
				fmt.Fprintf(cmd.OutOrStdout(), "packed size: %d bytes\n", flatjson.PackedSize(doc))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "also report the packed binary size")
	return cmd
}
