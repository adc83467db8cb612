package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/config"
	"cinelog/internal/site"
)

func newSiteCommand(ctx *commandContext) *cobra.Command {
	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "HTML gallery utilities",
	}
	siteCmd.AddCommand(newSiteGenerateCommand(ctx))
	siteCmd.AddCommand(newSiteInitTemplateCommand(ctx))
	return siteCmd
}

func newSiteGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Render the catalog to the configured HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				return s.shell.GenerateSite(cmd.Context())
			})
		},
	}
}

func newSiteInitTemplateCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init-template",
		Short: "Write the built-in page template for customization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(targetPath)
			switch {
			case target != "":
				if target, err = config.ExpandPath(target); err != nil {
					return fmt.Errorf("resolve template path: %w", err)
				}
			case cfg.Site.TemplatePath != "":
				target = cfg.Site.TemplatePath
			default:
				target = filepath.Join(filepath.Dir(cfg.Site.OutputPath), "index_template.html")
			}

			if err := site.WriteDefaultTemplate(target, overwrite); err != nil {
				if errors.Is(err, site.ErrTemplateExists) {
					return fmt.Errorf("template already exists at %s (use --overwrite to replace it)", target)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote page template to %s\n", target)
			if cfg.Site.TemplatePath != target {
				fmt.Fprintf(out, "Set site.template_path = %q to use it.\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the template file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing template")
	return cmd
}
