package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/output"
	"github.com/dshills/revsent/internal/session"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify a review's sentiment and noun density",
	Long: "Classify a review (random unless --id is given). Results are cached per " +
		"review and kind for the lifetime of the process.",
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(flagAnalyzeKind)
		if err != nil {
			return err
		}
		if _, err := output.GetWriter(flagAnalyzeFormat, output.Options{}); err != nil {
			return err
		}

		sess, cfg := openSession(cmd.ErrOrStderr(), overrideFlags{
			token:  flagAnalyzeToken,
			format: flagAnalyzeFormat,
		})
		if sess == nil {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx = analysis.WithToken(ctx, cfg.Token)

		var out *session.Outcome
		if flagAnalyzeID >= 0 {
			out, err = sess.Analyze(ctx, flagAnalyzeID, kinds...)
		} else {
			out, err = sess.AnalyzeRandom(ctx, kinds...)
		}
		if err != nil {
			report(cmd.ErrOrStderr(), err)
			return nil
		}

		return writeOutcome(cmd, out, cfg.Format, cfg.ExcerptChars)
	},
}

func writeOutcome(cmd *cobra.Command, out *session.Outcome, format string, excerptChars int) error {
	opts := output.Options{ExcerptChars: excerptChars, Full: flagAnalyzeFull}
	if flagAnalyzeOut != "" {
		if err := output.WriteOutcome(out, format, flagAnalyzeOut, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	}
	w, err := output.GetWriter(format, opts)
	if err != nil {
		return err
	}
	if err := w.Write(cmd.OutOrStdout(), out); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
	}
	return nil
}

// analyze flags
var (
	flagAnalyzeID     int
	flagAnalyzeKind   string
	flagAnalyzeToken  string
	flagAnalyzeFull   bool
	flagAnalyzeFormat string
	flagAnalyzeOut    string
)

func init() {
	analyzeCmd.Flags().IntVar(&flagAnalyzeID, "id", -1, "Review id to analyze (negative: random)")
	analyzeCmd.Flags().StringVar(&flagAnalyzeKind, "kind", "all", "Analysis kind (sentiment, nouns, all)")
	analyzeCmd.Flags().StringVar(&flagAnalyzeToken, "token", "", "API token (default: $HF_TOKEN)")
	analyzeCmd.Flags().BoolVar(&flagAnalyzeFull, "full", false, "Show the full review text")
	analyzeCmd.Flags().StringVar(&flagAnalyzeFormat, "format", "", "Output format (text, json, yaml, markdown)")
	analyzeCmd.Flags().StringVar(&flagAnalyzeOut, "out", "", "Output file path (default: stdout)")
}

