package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/docnorm/internal/jsonl"
	"github.com/cognicore/docnorm/pkg/docnorm"
	"github.com/cognicore/docnorm/pkg/docnorm/config"
	"github.com/cognicore/docnorm/pkg/docnorm/store"
	"github.com/cognicore/docnorm/pkg/docnorm/store/sqlite"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Input JSONL file of method records (required)")
		configPath = flag.String("config", "", "YAML config file (optional)")
		envFile    = flag.String("env", "", "Env file with DOCNORM_* overrides (optional, default .env)")
		dbPath     = flag.String("db", "", "SQLite database for runs (optional)")
		outPath    = flag.String("out", "-", "Output JSONL file, - for stdout")
		workers    = flag.Int("workers", -1, "Worker pool size, overrides config (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	n, err := buildNormalizer(ctx, *configPath, *envFile, *dbPath, *workers)
	if err != nil {
		log.Fatal(err)
	}
	defer n.Close()

	records, err := jsonl.LoadRecords(*inputPath)
	if err != nil {
		log.Fatal("Failed to load records:", err)
	}
	log.Printf("Loaded %d records from %s", len(records), *inputPath)

	run, err := n.Run(ctx, records)
	if err != nil {
		log.Fatalf("normalize: %v", err)
	}

	if err := writeOutput(*outPath, run); err != nil {
		log.Fatalf("write output: %v", err)
	}

	log.Printf("✓ Run %s complete: %d of %d records kept", run.ID, len(run.Records), run.Total)
}

// buildNormalizer loads configuration and opens the optional store.
func buildNormalizer(ctx context.Context, configPath, envFile, dbPath string, workers int) (*docnorm.Normalizer, error) {
	var envFiles []string
	if envFile != "" {
		envFiles = []string{envFile}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv(envFiles...)
	if workers >= 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := config.Build(cfg, log.Default())

	var st store.Store
	if dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	return docnorm.New(docnorm.Options{
		Processor: comp.Processor,
		Store:     st,
	}), nil
}

func writeOutput(path string, run store.Run) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		return jsonl.WriteRecords(os.Stdout, run.Records)
	}
	return jsonl.WriteFile(path, run.Records)
}
