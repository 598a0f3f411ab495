package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"bidwise/internal/analysis"
	"bidwise/internal/config"
	"bidwise/internal/data"
	"bidwise/internal/model"
	"bidwise/internal/predict"
	"bidwise/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "eda":
		cmdEDA(os.Args[2:])
	case "generate":
		cmdGenerate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml")
	fmt.Println("  cli eda --data data/train.csv")
	fmt.Println("  cli generate --out data/train.csv --rows 50000 --seed 42")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate replays the dataset under the configured strategy and budget")
	fmt.Println("  - eda prints dataset-level stats without running any auction")
	fmt.Println("  - generate writes a synthetic replay log")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	n := fs.Int("n", 0, "Optional: limit to first N impressions (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}

	impressions, err := data.LoadImpressions(cfg.Dataset)
	if err != nil {
		fatal(err)
	}
	if *n > 0 && *n < len(impressions) {
		impressions = impressions[:*n]
	}

	params, err := cfg.Strategy.ToParams()
	if err != nil {
		fatal(err)
	}

	var scorer sim.Scorer
	if params.Strategy == model.StrategyOptimized {
		predictor, err := predict.Load(cfg.ModelDir)
		if err != nil {
			fatal(err)
		}
		scorer = predictor
	}

	result, err := sim.Simulate(impressions, scorer, params, cfg.Budget)
	if err != nil {
		fatal(err)
	}

	printJSON(result)
	fmt.Printf("strategy=%s impressions=%d spent=$%.2f remaining=$%.2f score=%d (%s)\n",
		params.Strategy,
		result.Metrics.TotalImpressions,
		result.Metrics.TotalSpent,
		result.Metrics.RemainingBudget,
		result.Metrics.Score,
		result.Termination,
	)
}

func cmdEDA(args []string) {
	fs := flag.NewFlagSet("eda", flag.ExitOnError)
	dataPath := fs.String("data", "data/train.csv", "Path to replay log (CSV or XLSX)")
	_ = fs.Parse(args)

	impressions, err := data.LoadImpressions(*dataPath)
	if err != nil {
		fatal(err)
	}

	printJSON(analysis.Summarize(impressions))
	printJSON(analysis.MarketPriceHistogram(impressions))
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	outPath := fs.String("out", "data/train.csv", "Output CSV path")
	rows := fs.Int("rows", 50000, "Number of impressions to generate")
	seed := fs.Int64("seed", 42, "RNG seed")
	_ = fs.Parse(args)

	impressions := data.Generate(data.GeneratorParams{Rows: *rows, Seed: *seed})
	if err := data.WriteCSV(*outPath, impressions); err != nil {
		fatal(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(impressions), *outPath)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
