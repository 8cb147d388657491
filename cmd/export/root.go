package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"skillyst/internal/config"
	"skillyst/internal/export"
	"skillyst/internal/paginate"
	"skillyst/internal/raster"
	"skillyst/internal/resume"
	"skillyst/internal/templates"
)

type exportOpts struct {
	input       string // resume JSON path, empty for the built-in sample
	template    string
	outDir      string
	legacyPages bool
	verbose     bool
}

// newRootCmd 构建 export 命令。rasterizer 为空时按配置启动 Chromium。
func newRootCmd(rasterizer raster.Rasterizer) *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Render a resume to an A4 PDF",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				opts.outDir = cfg.Export.OutputDir
			}
			if !cmd.Flags().Changed("legacy-pages") {
				opts.legacyPages = cfg.Export.LegacyPages
			}

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			r := rasterizer
			if r == nil {
				r = raster.NewRodRasterizer(logger, raster.RodOptions{
					Bin:       cfg.Browser.Bin,
					Headless:  cfg.Browser.Headless,
					NoSandbox: cfg.Browser.NoSandbox,
					Timeout:   cfg.Browser.Timeout,
				})
			}
			return runExport(cmd.Context(), logger, r, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "resume JSON file (defaults to the sample resume)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", string(templates.Modern), "template: modern, professional, creative or minimal")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (defaults to EXPORT_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&opts.legacyPages, "legacy-pages", false, "keep emitting pages while any image height remains, including a trailing blank page")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runExport(ctx context.Context, logger *slog.Logger, rasterizer raster.Rasterizer, opts exportOpts, out io.Writer) error {
	rec, err := loadRecord(opts.input)
	if err != nil {
		return err
	}
	registry, err := templates.NewRegistry()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	rule := paginate.StopRuleTrimmed
	if opts.legacyPages {
		rule = paginate.StopRuleLegacy
	}
	pipeline := export.NewPipeline(export.Options{
		Logger:     logger,
		Templates:  registry,
		Rasterizer: rasterizer,
		Paginator:  paginate.New(rule),
	})

	res, err := pipeline.Export(ctx, export.Request{
		SessionID:   "cli",
		Record:      rec,
		Variant:     templates.ParseVariant(opts.template),
		Destination: export.DirDestination{Dir: opts.outDir},
	})
	if errors.Is(err, export.ErrNoSurface) {
		return errors.New("nothing to export: the rendered resume has no printable surface")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%d pages, %s template)\n", res.Location, res.Pages, res.Variant)
	return nil
}

func loadRecord(path string) (resume.Record, error) {
	if path == "" {
		return resume.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return resume.Record{}, fmt.Errorf("read resume: %w", err)
	}
	rec, err := resume.DecodeJSON(data)
	if err != nil {
		return resume.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
