package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafbgarcia/approutes"
	"github.com/rafbgarcia/approutes/internal/codegen"
	"github.com/rafbgarcia/approutes/internal/display"
)

func newPrintCmd(opts *options) *cobra.Command {
	var (
		flat    bool
		noColor bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the compiled route tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := approutes.CreateRoutes(cmd.Context(), opts.cfg.Compiler(opts.logger))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if format != "" {
				f, err := codegen.ParseFormat(format)
				if err != nil {
					return err
				}
				out, err := codegen.Render(records, f, codegen.Options{ImportPrefix: opts.cfg.Output.ImportPrefix})
				if err != nil {
					return fmt.Errorf("rendering %s: %w", f, err)
				}
				_, err = w.Write(out)
				return err
			}

			p := display.New(w, !noColor && display.ColorFor(w))
			if flat {
				p.Routes(approutes.Resolve(records))
			} else {
				p.Tree(records)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "print one line per page with its full URL")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVarP(&format, "format", "f", "", "print the rendered module or manifest instead: ts, js, json or yaml")
	return cmd
}
