package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/config"
	"avatar-combiner/internal/export"
	"avatar-combiner/internal/host"
	"avatar-combiner/internal/publish"
	"avatar-combiner/internal/scanner"
	"avatar-combiner/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	importRoot := flag.String("import", "", "Root folder with per-category component subfolders")
	outputDir := flag.String("output", "", "Output folder for exported bundles")
	n := flag.Int("n", -1, "Number of combinations per skeleton group (default: 10)")
	seed := flag.Int64("seed", 0, "Random seed for reproducible draws")
	ext := flag.String("ext", "", "Component file extension (default: fbx)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	doPublish := flag.Bool("publish", false, "Upload exported bundles to the configured S3 bucket")

	flag.Parse()

	seeded := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seeded = true
		}
	})

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.FromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{
		ImportRoot:   *importRoot,
		OutputDir:    *outputDir,
		Combinations: *n,
		Seed:         *seed,
		Seeded:       seeded,
		Workers:      *workers,
		Ext:          *ext,
	})

	if cfg.ImportRoot == "" {
		fmt.Fprintln(os.Stderr, "Error: no import folder. Use -import flag, ACC_IMPORT_ROOT, or a config file.")
		os.Exit(1)
	}
	if info, err := os.Stat(cfg.ImportRoot); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: import folder %s is not a directory.\n", cfg.ImportRoot)
		os.Exit(1)
	}

	sources, err := scanner.Scan(cfg.ImportRoot, cfg.Ext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		fmt.Println("No component files found.")
		os.Exit(0)
	}

	descs, parseRejects, mismatches := scanner.Describe(sources)
	for _, m := range mismatches {
		if m.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s: region %q does not match folder %q (closest category: %q)\n",
				m.Name, m.Region, m.Category, m.Suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %s: region %q does not match folder %q\n",
				m.Name, m.Region, m.Category)
		}
	}

	groups, rejected := classify.Classify(descs)
	rejected = append(parseRejects, rejected...)

	texIndex := texture.BuildIndex(cfg.ImportRoot)
	texCache := texture.NewCache(cfg.MaxTexSize)

	fmt.Println("Avatar Component Combinations")
	fmt.Printf("Components: %d, Skeleton groups: %d, Textures: %d parts\n",
		len(descs), len(groups), texIndex.Len())
	fmt.Printf("Combinations per group: %d, Workers: %d\n", cfg.Combinations, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	exporter := host.NewGLBExporter(texIndex, texCache)
	report, err := export.Run(groups, rejected, exporter, export.Options{
		OutputDir:    cfg.OutputDir,
		Combinations: cfg.Combinations,
		Seed:         cfg.Seed,
		Seeded:       cfg.Seeded || seeded,
		Workers:      cfg.Workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Exported: %d, Failed: %d, Rejected inputs: %d\n",
		len(report.Exported), len(report.Failed), len(report.Rejected))
	for _, t := range report.Truncated {
		fmt.Printf("  skeleton %q: only %d of %d requested combinations exist\n",
			t.Skeleton, t.Produced, t.Requested)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(os.Stderr, "  failed %s: %s\n", f.Name, f.Reason)
	}

	reportPath := filepath.Join(cfg.OutputDir, "report.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := export.WriteReport(reportPath, report); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
	} else {
		fmt.Printf("Report: %s\n", reportPath)
	}

	if *doPublish {
		if !cfg.S3.Enabled() {
			fmt.Fprintln(os.Stderr, "Warning: -publish set but no S3 endpoint configured.")
		} else if err := publishAll(cfg.S3, report.Exported); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	if len(report.Failed) > 0 {
		os.Exit(1)
	}
}

func publishAll(cfg publish.Config, exported []export.ExportedSet) error {
	client, err := publish.New(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	uploaded := 0
	for _, e := range exported {
		if err := client.Upload(ctx, e.Path, e.Name); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		uploaded++
	}
	fmt.Printf("Published: %d/%d bundles\n", uploaded, len(exported))
	return nil
}
