// Package main provides the fillgaps tool, which repairs nodata holes in
// gridded elevation surfaces. It locates each hole's known-value boundary,
// then estimates missing cells from nearby boundary samples using
// inverse-distance weighting.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/banshee-data/surface.report/internal/fill"
	"github.com/banshee-data/surface.report/internal/monitoring"
	"github.com/banshee-data/surface.report/internal/raster"
	"github.com/banshee-data/surface.report/internal/render"
	"github.com/banshee-data/surface.report/internal/report"
	"github.com/banshee-data/surface.report/internal/runlog"
	"github.com/banshee-data/surface.report/internal/version"
)

// Config holds configuration for one fillgaps run.
type Config struct {
	InputFile   string
	OutputFile  string
	FilterSize  int
	ReportFile  string
	RenderFile  string
	DBFile      string
	JSONFile    string
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("fillgaps %s\n", version.String())
		return
	}

	if cfg.InputFile == "" {
		log.Fatal("input raster is required")
	}
	if cfg.OutputFile == "" {
		log.Fatal("output raster is required")
	}
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		log.Fatalf("input raster not found: %s", cfg.InputFile)
	}

	input, err := raster.ReadASCII(cfg.InputFile)
	if err != nil {
		log.Fatalf("Failed to read input raster: %v", err)
	}

	opts := fill.Options{FilterSize: cfg.FilterSize}
	if cfg.Verbose {
		opts.Progress = func(stage string, pct int) {
			monitoring.Logf("%s: %d%%", stage, pct)
		}
	}

	output, sum, err := fill.Run(input, opts)
	if err != nil {
		log.Fatalf("Gap fill failed: %v", err)
	}

	runID := uuid.New().String()
	output.AddMetadataEntry("Created by the surface.report fillgaps tool")
	output.AddMetadataEntry(fmt.Sprintf("Run ID: %s", runID))
	output.AddMetadataEntry(fmt.Sprintf("Filter size: %d", sum.FilterSize))
	output.AddMetadataEntry(fmt.Sprintf("Elapsed time (excluding I/O): %s", sum.Elapsed))

	if err := output.WriteASCII(cfg.OutputFile); err != nil {
		log.Fatalf("Failed to write output raster: %v", err)
	}

	if cfg.ReportFile != "" {
		if err := report.WriteReport(cfg.ReportFile, input, output, sum, runID); err != nil {
			log.Printf("Warning: failed to write HTML report: %v", err)
		} else if cfg.Verbose {
			monitoring.Logf("Report written to: %s", cfg.ReportFile)
		}
	}

	if cfg.RenderFile != "" {
		title := fmt.Sprintf("Filled surface (filter=%d)", sum.FilterSize)
		if err := render.WritePNG(cfg.RenderFile, output, title); err != nil {
			log.Printf("Warning: failed to render PNG: %v", err)
		} else if cfg.Verbose {
			monitoring.Logf("Render written to: %s", cfg.RenderFile)
		}
	}

	if cfg.DBFile != "" {
		if err := recordRun(cfg, sum, runID); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	if cfg.JSONFile != "" {
		if err := exportJSON(sum, cfg.JSONFile); err != nil {
			log.Printf("Warning: failed to export JSON: %v", err)
		}
	}

	printSummary(sum, runID)
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.InputFile, "input", "", "Path to input Esri ASCII raster (.asc)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Path for the filled output raster")
	flag.IntVar(&cfg.FilterSize, "filter", 11, "Search radius in cells (even values rounded up to odd)")
	flag.StringVar(&cfg.ReportFile, "report", "", "Optional HTML report output path")
	flag.StringVar(&cfg.RenderFile, "render", "", "Optional PNG render output path")
	flag.StringVar(&cfg.DBFile, "db", "", "Optional SQLite run-history database path")
	flag.StringVar(&cfg.JSONFile, "json", "", "Optional JSON summary output path")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable progress logging")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print the tool version and exit")

	flag.Parse()

	return cfg
}

func recordRun(cfg Config, sum *fill.Summary, runID string) error {
	store, err := runlog.Open(cfg.DBFile)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(&runlog.Run{
		RunID:         runID,
		InputPath:     cfg.InputFile,
		OutputPath:    cfg.OutputFile,
		FilterSize:    sum.FilterSize,
		HoleCells:     sum.HoleCells,
		BoundaryCells: sum.BoundaryCells,
		FilledCells:   sum.FilledCells,
		UnfilledCells: sum.UnfilledCells,
		ElapsedNs:     int64(sum.Elapsed),
	})
}

func printSummary(sum *fill.Summary, runID string) {
	fmt.Println("\n=== Gap Fill Summary ===")
	fmt.Printf("Run ID: %s\n", runID)
	fmt.Printf("Filter Size: %d\n", sum.FilterSize)
	fmt.Printf("Hole Cells: %d\n", sum.HoleCells)
	fmt.Printf("Boundary Cells: %d\n", sum.BoundaryCells)
	fmt.Printf("Filled Cells: %d\n", sum.FilledCells)
	fmt.Printf("Unfilled Cells: %d\n", sum.UnfilledCells)
	if sum.FilledCells > 0 {
		fmt.Printf("Filled Mean: %.3f (stddev %.3f)\n", sum.FilledMean, sum.FilledStdDev)
		fmt.Printf("Filled Range: [%.3f, %.3f]\n", sum.FilledMin, sum.FilledMax)
	}
	fmt.Printf("Elapsed (excluding I/O): %s\n", sum.Elapsed)
}

func exportJSON(sum *fill.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sum)
}
