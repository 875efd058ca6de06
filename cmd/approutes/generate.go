package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafbgarcia/approutes"
	"github.com/rafbgarcia/approutes/internal/codegen"
	"github.com/rafbgarcia/approutes/internal/config"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile the source folder and write the routes module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				opts.cfg.Output.Path = output
			}
			if format != "" {
				opts.cfg.Output.Format = format
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts.cfg, opts.logger)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (overrides output.path)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: ts, js, json or yaml (overrides output.format)")
	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, cfg *config.Config, logger *approutes.Logger) error {
	compiler := cfg.Compiler(logger)

	// Step 1: List the source tree.
	fmt.Fprint(w, "  Discover ........ ")
	t := time.Now()
	files, err := compiler.Files.ListFiles(ctx)
	if err != nil {
		fmt.Fprintln(w, "FAILED")
		return fmt.Errorf("discovering %s: %w", cfg.Source, err)
	}
	fmt.Fprintf(w, "done (%d files) [%s]\n", len(files), fmtDuration(time.Since(t)))

	// Step 2: Build the route tree.
	fmt.Fprint(w, "  Compile ......... ")
	t = time.Now()
	records, err := approutes.Compile(compiler, files)
	if err != nil {
		fmt.Fprintln(w, "FAILED")
		return err
	}
	fmt.Fprintf(w, "done (%d routes) [%s]\n", len(approutes.Resolve(records)), fmtDuration(time.Since(t)))

	// Step 3: Render and write the module.
	fmt.Fprint(w, "  Write ........... ")
	t = time.Now()
	out, err := codegen.Render(records, cfg.Format(), codegen.Options{ImportPrefix: cfg.Output.ImportPrefix})
	if err != nil {
		fmt.Fprintln(w, "FAILED")
		return fmt.Errorf("rendering %s: %w", cfg.Format(), err)
	}
	changed, err := codegen.WriteFile(cfg.Output.Path, out)
	if err != nil {
		fmt.Fprintln(w, "FAILED")
		return err
	}
	status := "done"
	if !changed {
		status = "unchanged"
	}
	fmt.Fprintf(w, "%s (%s) [%s]\n", status, cfg.Output.Path, fmtDuration(time.Since(t)))
	logger.Info("routes generated", "output", cfg.Output.Path, "format", cfg.Format(), "changed", changed)
	return nil
}
