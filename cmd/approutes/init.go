package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafbgarcia/approutes/internal/codegen"
	"github.com/rafbgarcia/approutes/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var (
		source  string
		format  string
		locales []string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default approutes.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := opts.configPath
			if file == "" {
				file = config.FileName
			}

			cfg := config.Default()
			if source != "" {
				cfg.Source = source
			}
			if format != "" {
				f, err := codegen.ParseFormat(format)
				if err != nil {
					return err
				}
				cfg.Output.Format = string(f)
				cfg.Output.Path = strings.TrimSuffix(cfg.Output.Path, path.Ext(cfg.Output.Path)) + "." + string(f)
			}
			if len(locales) > 0 {
				cfg.I18n = &config.I18nConfig{Locales: locales, DefaultLocale: locales[0]}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.WriteYAML(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Config .......... wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "source folder")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: ts, js, json or yaml")
	cmd.Flags().StringSliceVar(&locales, "locales", nil, "supported locales, the first one is the default")
	return cmd
}
