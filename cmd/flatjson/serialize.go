package main

import (
	"github.com/spf13/cobra"

	"github.com/klauspost/flatjson"
)

func newSerializeCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "serialize <file>",
		Short: "Parse a JSON file and re-emit it through the token serializer",
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
			if !cmd.Flags().Changed("indent") {
				indent = cliCfg.Indent
			}
			doc, err := flatjson.Parse(src, cliCfg.parseOptions()...)
			if err != nil {
				return err
			}
			if _, err := flatjson.SerializeTo(cmd.OutOrStdout(), doc.Root(), indent); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 2, "spaces per nesting level (0 for compact)")
	return cmd
}
