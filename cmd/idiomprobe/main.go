package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"idiomprobe/internal/config"
	"idiomprobe/internal/dataset"
	"idiomprobe/internal/domain"
	"idiomprobe/internal/embedding"
	"idiomprobe/internal/logging"
	"idiomprobe/internal/output"
	"idiomprobe/internal/runner"
	"idiomprobe/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		inputPath      string
		comparisonType string
		batchSize      int
		cachePath      string
		model          string
		runName        string
		showPCA        bool
		seed           int64
		interactive    bool
		cfgPath        string
	)
	flag.StringVar(&inputPath, "input", "", "Path to the TSV input file (required)")
	flag.StringVar(&comparisonType, "comparison_type", "", "Comparison mode: words or para_pairs (required)")
	flag.IntVar(&batchSize, "embedding_batch_size", 0, "Sentences per embedding request (overrides config)")
	flag.StringVar(&cachePath, "embedding_cache", "", "Load embeddings from a cache file instead of the provider")
	flag.StringVar(&model, "embedding_model", "", "Embedding model name (overrides config)")
	flag.StringVar(&runName, "run_name", "", "Run name used for the output directory (default run_<timestamp>)")
	flag.BoolVar(&showPCA, "show_pca", false, "Write 2D PCA projections for each idiom group")
	flag.Int64Var(&seed, "seed", -1, "Seed for the random control-group draws (overrides config)")
	flag.BoolVar(&interactive, "interactive", false, "Browse word-mode results in a terminal UI")
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/idiomprobe/config.yaml if not provided)")
	flag.Parse()

	if inputPath == "" || comparisonType == "" {
		fmt.Println("Usage: idiomprobe --input=data.tsv --comparison_type=words|para_pairs [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(parseLevel(cfg.Run.LogLevel), cfg.Run.LogFormat, os.Stderr)

	if batchSize > 0 {
		cfg.Provider.BatchSize = batchSize
	}
	if model != "" && cfg.Provider.Remote != nil {
		cfg.Provider.Remote.Model = model
	}
	if seed >= 0 {
		cfg.Run.Seed = seed
	}
	if showPCA {
		cfg.Run.WritePCA = true
	}
	if runName == "" {
		runName = fmt.Sprintf("run_%d", time.Now().Unix())
	}

	ctx := context.Background()
	writer := output.NewWriter(cfg.Run.OutputDir, runName)
	opts := runner.Options{
		RunName:   runName,
		InputPath: inputPath,
		Model:     modelName(cfg),
		CachePath: cachePath,
		CacheDir:  "cache",
		WritePCA:  cfg.Run.WritePCA,
	}

	switch domain.ComparisonType(comparisonType) {
	case domain.ComparisonWords:
		ds, err := dataset.LoadWords(inputPath)
		if err != nil {
			log.Fatalf("failed to load input: %v", err)
		}
		provider := buildProvider(cfg, ds.Encode)
		r := runner.New(provider, writer, cfg.Run.Seed)
		result, err := r.RunWords(ctx, ds, opts)
		if err != nil {
			log.Fatalf("word comparison failed: %v", err)
		}
		fmt.Println(strings.Join(output.FormatWordSummary(result.Summary), "\n"))
		fmt.Printf("\nResults written to %s\n", result.OutputPath)
		if interactive {
			m := tui.New(runName, result.Groups, result.Summary)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				log.Fatal(err)
			}
		}
	case domain.ComparisonPairs:
		ds, err := dataset.LoadPairs(inputPath)
		if err != nil {
			log.Fatalf("failed to load input: %v", err)
		}
		provider := buildProvider(cfg, ds.Encode)
		r := runner.New(provider, writer, cfg.Run.Seed)
		result, err := r.RunPairs(ctx, ds, opts)
		if err != nil {
			log.Fatalf("sentence comparison failed: %v", err)
		}
		fmt.Println(strings.Join(output.FormatPairSummary(result.Summary), "\n"))
		fmt.Printf("\nResults written to %s\n", result.OutputPath)
	default:
		log.Fatalf("unknown comparison type: %s", comparisonType)
	}
}

func buildProvider(cfg *config.AppConfig, encode func([]string) []int) domain.Provider {
	switch cfg.Provider.Type {
	case "hashed", "":
		return embedding.NewHashed(embedding.HashedConfig{
			Dimension: cfg.Provider.Dimension,
			Seed:      cfg.Run.Seed,
			Encode:    encode,
		})
	case "remote":
		if cfg.Provider.Remote == nil {
			log.Fatalf("remote provider config missing")
		}
		client, err := embedding.NewRemote(embedding.RemoteConfig{
			BaseURL:   cfg.Provider.Remote.BaseURL,
			APIKeyEnv: cfg.Provider.Remote.APIKeyEnv,
			Model:     cfg.Provider.Remote.Model,
			Timeout:   time.Duration(cfg.Provider.Remote.TimeoutSecs) * time.Second,
			BatchSize: cfg.Provider.BatchSize,
			Encode:    encode,
		})
		if err != nil {
			log.Fatalf("remote provider init failed: %v", err)
		}
		return client
	default:
		log.Fatalf("unknown provider: %s", cfg.Provider.Type)
		return nil
	}
}

func modelName(cfg *config.AppConfig) string {
	if cfg.Provider.Type == "remote" && cfg.Provider.Remote != nil {
		return cfg.Provider.Remote.Model
	}
	return "hashed"
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
