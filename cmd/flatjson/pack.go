package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/klauspost/flatjson"
)

func newPackCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pack <file>",
		Short: "Parse a JSON file and write its binary-packed token form",
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
				return err
			}
			blob := flatjson.Pack(nil, doc)
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(blob)
				return err
			}
			return os.WriteFile(out, blob, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default stdout)")
	return cmd
}

func newUnpackCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "Read a binary-packed blob and re-emit it as textual JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			blob, err := readFile(path)
			if err != nil {
				return err
			}
			doc, err := flatjson.Unpack(blob)
			if err != nil {
				return err
			}
			_, err = flatjson.SerializeTo(cmd.OutOrStdout(), doc.Root(), indent)
			return err
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per nesting level (0 for compact)")
	return cmd
}
