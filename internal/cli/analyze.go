package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/signalsift/signalsift/internal/ingest"
	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON        string
	timeout        time.Duration
	noCache        bool
	useDemo        bool
	oracleProvider string
	oracleModel    string
	oracleBaseURL  string
	oracleRPS      float64
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze one comment batch and generate a triage report",
	Long: `Analyze runs a batch of comments through the full pipeline:
- Classify category, sentiment, toxicity and PII exposure
- Score commercial intent, attack patterns, engagement anomalies
  and profile suspicion
- Run flagged comments through deep bias investigation
- Aggregate everything into an authenticity assessment

Input is a .json or .csv file of comments, or the built-in demo
batch with --demo.

Example:
  signalsift analyze comments.json
  signalsift analyze comments.csv --json report.json
  signalsift analyze --demo --oracle openai --oracle-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")

	// Input flags
	analyzeCmd.Flags().BoolVar(&useDemo, "demo", false, "analyze the built-in demo batch instead of a file")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall batch timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response caching")

	// Oracle flags
	analyzeCmd.Flags().StringVar(&oracleProvider, "oracle", "", "content oracle provider (openai; empty runs fallback heuristics only)")
	analyzeCmd.Flags().StringVar(&oracleModel, "oracle-model", "gpt-4o-mini", "content oracle model name")
	analyzeCmd.Flags().StringVar(&oracleBaseURL, "oracle-url", "", "content oracle base URL override")
	analyzeCmd.Flags().Float64Var(&oracleRPS, "oracle-rps", 5, "max oracle requests per second")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	comments, source, err := loadInput(args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input: %s (%d comments)\n", source, len(comments))
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Output.JSON = outJSON

	// Create pipeline
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Processing %d comments with %d workers...\n", len(comments), cfg.Concurrency.Workers)
	}

	result, err := p.Run(ctx, comments)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified %d comments\n", result.Summary.TotalCount)
		fmt.Fprintf(os.Stderr, "✓ Flagged %d for bias investigation\n", result.Summary.FlaggedCount)
		if result.Summary.FallbackCount > 0 {
			fmt.Fprintf(os.Stderr, "✓ Fallback heuristics used for %d comments\n", result.Summary.FallbackCount)
		}
	}

	// Render outputs
	if err := pipeline.RenderJSON(result, outJSON); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	pipeline.RenderSummary(os.Stderr, result.Summary)

	if verbose {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)
	}
	return nil
}

// loadInput resolves the comment source from args and the --demo flag
func loadInput(args []string) ([]model.Comment, string, error) {
	if useDemo {
		if len(args) > 0 {
			return nil, "", fmt.Errorf("--demo cannot be combined with an input file")
		}
		return ingest.DemoComments(), "built-in demo batch", nil
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("an input file is required (or pass --demo)")
	}
	comments, err := ingest.LoadComments(args[0])
	if err != nil {
		return nil, "", err
	}
	return comments, args[0], nil
}

// buildConfig layers flag values over the defaults and resolves the oracle
// API key from the environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Oracle.RequestsPerSecond = oracleRPS

	if oracleProvider != "" {
		cfg.Oracle.Provider = oracleProvider
		cfg.Oracle.Model = oracleModel
		cfg.Oracle.BaseURL = oracleBaseURL

		switch oracleProvider {
		case "openai":
			cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Oracle.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}
	return cfg, nil
}
