package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rafbgarcia/approutes/internal/codegen"
	"github.com/rafbgarcia/approutes/internal/inspect"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route tree over HTTP for editors and dev tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.Serve.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := inspect.New(
				inspect.CompilerSource(opts.cfg.Compiler(opts.logger)),
				codegen.Options{ImportPrefix: opts.cfg.Output.ImportPrefix},
				opts.logger,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "  Inspect server .. listening on http://%s\n", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides serve.addr)")
	return cmd
}
