// Package main provides the generate command-line tool that runs the
// full scrutin pipeline: fetch, parse, enrich, normalize, theme-assign
// and export.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"hemicycle/internal/assemblee"
	"hemicycle/internal/config"
	"hemicycle/internal/exporter"
	"hemicycle/internal/fetch"
	"hemicycle/internal/logger"
	"hemicycle/internal/models"
	"hemicycle/internal/normalizer"
	"hemicycle/internal/report"
	"hemicycle/internal/themes"
)

const defaultConfigFile = "configs/pipeline.yaml"

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dataDir := flag.String("data-dir", "", "Output data directory (overrides config)")
	cacheDir := flag.String("cache-dir", "", "Archive cache directory (overrides config)")
	limit := flag.Int("limit", 0, "Maximum number of scrutins per source (overrides config)")
	reportFile := flag.String("report", "", "Write a markdown run summary to this path (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)

	// Apply CLI overrides
	if *dataDir != "" {
		cfg.Pipeline.Output.DataDir = *dataDir
	}

	if *cacheDir != "" {
		cfg.Pipeline.CacheDir = *cacheDir
	}

	if *limit > 0 {
		cfg.Pipeline.Limit = *limit
	}

	if *reportFile != "" {
		cfg.Pipeline.Output.ReportFile = *reportFile
	}

	appLogger := logger.NewLogger(cfg.Pipeline.Logging.Level)
	generatedAt := time.Now().UTC().Format(time.RFC3339)

	themeCfg, err := themes.LoadConfig(cfg.Pipeline.Output.ThemesFile)
	if err != nil {
		log.Fatalf("❌ Failed to load theme config: %v\n", err)
	}

	fetcher := fetch.NewFetcher(&cfg.Pipeline.Retry, appLogger)

	enabledSources := cfg.GetEnabledSources()
	fmt.Printf("🚀 Processing %d enabled sources...\n", len(enabledSources))

	var scrutins []models.CanonicalScrutin

	for i, sourceConfig := range enabledSources {
		fmt.Printf("\n----------------------------------------------------------------\n")
		fmt.Printf("📦 Source %d/%d: %s legislature %s\n",
			i+1, len(enabledSources), sourceConfig.Chamber, sourceConfig.Legislature)

		canonical := runSource(cfg, sourceConfig, fetcher, appLogger)
		scrutins = append(scrutins, canonical...)

		fmt.Printf("✅ %d scrutins collected\n", len(canonical))
	}

	themes.Assign(scrutins, themeCfg)

	if err := exporter.Export(cfg.Pipeline.Output.DataDir, scrutins, generatedAt); err != nil {
		log.Fatalf("❌ Failed to export: %v\n", err)
	}

	if cfg.Pipeline.Output.ReportFile != "" {
		writeReport(cfg.Pipeline.Output.ReportFile, scrutins, generatedAt)
	}

	fmt.Printf("\n✅ Exported %d scrutins to %s\n", len(scrutins), cfg.Pipeline.Output.DataDir)
}

// loadConfig resolves the configuration from the flag or the default
// file location.
func loadConfig(configFile string) *config.Config {
	if configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			log.Fatalf("❌ Please provide -config file or place %s in working directory\n", defaultConfigFile)
		}

		configFile = defaultConfigFile
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", configFile)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	fmt.Printf("✅ Configuration loaded: %s\n\n", cfg)

	return cfg
}

// runSource fetches, extracts and normalizes one source's scrutins.
func runSource(cfg *config.Config, src config.SourceConfig, fetcher *fetch.Fetcher, appLogger *logger.Logger) []models.CanonicalScrutin {
	scrutinsPath := cfg.ScrutinsCachePath(src)
	if src.ScrutinsFile == "" {
		if err := fetcher.Download(src.ScrutinsURL, scrutinsPath); err != nil {
			log.Fatalf("❌ Failed to fetch scrutins archive: %v\n", err)
		}
	}

	registryPath := cfg.RegistryCachePath(src)
	if registryPath != "" && src.RegistryFile == "" {
		if err := fetcher.Download(src.RegistryURL, registryPath); err != nil {
			log.Fatalf("❌ Failed to fetch registry archive: %v\n", err)
		}
	}

	source := assemblee.NewSource(src.Chamber, src.Legislature, appLogger)

	raws, err := source.Collect(scrutinsPath, registryPath, cfg.Pipeline.Limit)
	if err != nil {
		log.Fatalf("❌ Failed to collect scrutins: %v\n", err)
	}

	processor := normalizer.NewProcessor(src.Chamber, src.Legislature)

	canonical, err := processor.Process(raws)
	if err != nil {
		log.Fatalf("❌ Failed to normalize scrutins: %v\n", err)
	}

	return canonical
}

func writeReport(path string, scrutins []models.CanonicalScrutin, generatedAt string) {
	summary := report.Summary(scrutins, generatedAt)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("❌ Failed to create report directory: %v\n", err)
	}

	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		log.Fatalf("❌ Failed to write report: %v\n", err)
	}

	fmt.Printf("📝 Report written to %s\n", path)
}

func printUsage() {
	fmt.Println("generate - scrutin pipeline")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  generate [-config pipeline.yaml] [-data-dir data] [-limit 100] [-report report.md]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
