package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/rodchenko/avacrop/internal/config"
	"github.com/rodchenko/avacrop/internal/exporter"
	"github.com/rodchenko/avacrop/internal/profile"
	"github.com/rodchenko/avacrop/internal/source"
	"github.com/rodchenko/avacrop/internal/system"
)

var version = "dev"

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: time.Kitchen})

var command = &cli.Command{
	Name:    "avacrop",
	Usage:   "Crop profiles out of an image or GIF and export them as a zip archive",
	Version: version,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "profiles",
			Usage:   "Profiles YAML file (default: one centered profile)",
			Aliases: []string{"p"},
		},
		&cli.StringFlag{
			Name:    "out",
			Usage:   "Output archive path",
			Aliases: []string{"o"},
			Value:   "profiles.zip",
		},
		&cli.BoolFlag{
			Name:    "circle",
			Usage:   "Apply a circular mask to every profile",
			Aliases: []string{"c"},
		},
		&cli.BoolFlag{
			Name:    "transparent",
			Usage:   "Keep transparency outside the circular mask (costs color depth)",
			Aliases: []string{"t"},
		},
		&cli.StringFlag{
			Name:  "previews",
			Usage: "Also write per-profile preview thumbnails into this directory",
		},
		&cli.StringFlag{
			Name:  "init-profiles",
			Usage: "Write a starter profiles file for the input and exit",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Max parallel still encodes (0 = one per profile)",
		},
		&cli.IntFlag{
			Name:  "dpi",
			Usage: "Render DPI for PDF input",
			Value: 150,
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "Print a run summary",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Verbose logging",
		},
	},
	Action: action,
}

func action(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) != 1 {
		cli.ShowAppHelpAndExit(c, 2)
	}

	if c.Bool("debug") {
		logger.SetLevel(log.DebugLevel)
	}
	stats := system.NewStats()

	cfg := config.Config{
		InputPath:    args[0],
		OutputPath:   c.String("out"),
		ProfilesPath: c.String("profiles"),
		PreviewDir:   c.String("previews"),
		Workers:      int(c.Int("workers")),
		DPI:          int(c.Int("dpi")),
		CircularCrop: c.Bool("circle"),
		Transparent:  c.Bool("transparent"),
		ShowStats:    c.Bool("stats"),
		Debug:        c.Bool("debug"),
		BuildVersion: version,
	}

	loadStart := time.Now()
	var (
		media *source.Media
		err   error
	)
	if strings.EqualFold(filepath.Ext(cfg.InputPath), ".pdf") {
		media, err = source.LoadPDF(cfg.InputPath, cfg.DPI)
	} else {
		media, err = source.Load(cfg.InputPath)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.InputPath, err)
	}
	stats.Phase("load", loadStart)
	logger.Info("media loaded",
		"path", cfg.InputPath,
		"type", media.MediaType,
		"size", fmt.Sprintf("%dx%d", media.Width, media.Height),
		"frames", len(media.Frames))

	if initPath := c.String("init-profiles"); initPath != "" {
		list := profile.NewList()
		cc := profile.CenterCrop(media.Width, media.Height)
		list.Profiles[0].Crop = &cc
		if err := profile.Save(list, initPath); err != nil {
			return fmt.Errorf("write profiles file: %w", err)
		}
		logger.Info("profiles file written", "path", initPath)
		return nil
	}

	var list *profile.List
	if cfg.ProfilesPath != "" {
		list, err = profile.Load(cfg.ProfilesPath)
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
	} else {
		list = profile.NewList()
		cc := profile.CenterCrop(media.Width, media.Height)
		list.Profiles[0].Crop = &cc
	}
	logger.Info("profiles ready", "count", len(list.Profiles))

	exp := exporter.New(logger)
	exp.Workers = cfg.Workers
	opts := config.ExportOptions{CircularCrop: cfg.CircularCrop, Transparent: cfg.Transparent}

	if cfg.PreviewDir != "" {
		if err := exp.WritePreviews(media, list.Profiles, opts, cfg.PreviewDir); err != nil {
			return err
		}
		logger.Info("previews written", "dir", cfg.PreviewDir)
	}

	exportStart := time.Now()
	lastPct := -1
	res, err := exp.Export(media, list.Profiles, opts, func(done, total int) {
		if total == 0 {
			return
		}
		pct := done * 100 / total
		if pct/10 > lastPct/10 {
			logger.Info("export progress", "done", done, "total", total)
		}
		lastPct = pct
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	stats.Phase("export", exportStart)

	if err := os.WriteFile(cfg.OutputPath, res.Archive, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	logger.Info("archive written",
		"path", cfg.OutputPath,
		"exported", res.Exported,
		"skipped", res.Skipped)
	if res.Skipped > 0 {
		logger.Warn("some profiles were skipped", "profiles", res.SkippedNames)
	}

	if cfg.ShowStats {
		fmt.Println(stats.Report())
	}
	return nil
}

func main() {
	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("avacrop failed", "err", err)
		os.Exit(1)
	}
}
