package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/signalsift/signalsift/internal/ingest"
	"github.com/signalsift/signalsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Analyze multiple comment batches and write one report each",
	Long: `Batch processes several comment files, one pipeline run per file:
- Each file is a .json or .csv batch of comments
- Comments within a batch are analyzed in parallel
- One JSON report is written per input file

Example:
  signalsift batch post1.json post2.json
  signalsift batch exports/*.csv --concurrency 16 --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers per batch")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./signalsift-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for all batches")

	// Shared pipeline flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response caching")
	batchCmd.Flags().StringVar(&oracleProvider, "oracle", "", "content oracle provider (openai; empty runs fallback heuristics only)")
	batchCmd.Flags().StringVar(&oracleModel, "oracle-model", "gpt-4o-mini", "content oracle model name")
	batchCmd.Flags().StringVar(&oracleBaseURL, "oracle-url", "", "content oracle base URL override")
	batchCmd.Flags().Float64Var(&oracleRPS, "oracle-rps", 5, "max oracle requests per second")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  SignalSift Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input files:  %d\n", len(args))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if cfg.Oracle.Provider != "" {
		fmt.Fprintf(os.Stderr, "  Oracle:       %s/%s\n\n", cfg.Oracle.Provider, cfg.Oracle.Model)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline; the oracle cache is shared across all batches
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	successCount := 0
	failureCount := 0

	for _, file := range args {
		comments, err := ingest.LoadComments(file)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
			continue
		}

		result, err := p.Run(ctx, comments)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportName(file))
		if err := pipeline.RenderJSON(result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", file, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s: %d comments, %d flagged, authenticity %.3f\n",
			file, result.Summary.TotalCount, result.Summary.FlaggedCount, result.Summary.AuthenticityScore)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(args))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d batches failed", failureCount, len(args))
	}
	return nil
}

// reportName derives the report filename from the input filename
func reportName(file string) string {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".report.json"
}
