package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/revsent/internal/output"
	"github.com/dshills/revsent/internal/reviews"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// sample flags
var (
	flagSampleFull   bool
	flagSampleFormat string
)

// show flags
var (
	flagShowFull   bool
	flagShowFormat string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a random review",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkReviewFormat(flagSampleFormat); err != nil {
			return err
		}
		sess, cfg := openSession(cmd.ErrOrStderr(), overrideFlags{format: flagSampleFormat})
		if sess == nil {
			return nil
		}
		r, err := sess.Sample()
		if err != nil {
			report(cmd.ErrOrStderr(), err)
			return nil
		}
		return printReview(cmd.OutOrStdout(), r, cfg.Format, cfg.ExcerptChars, flagSampleFull)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the review with the given id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := checkReviewFormat(flagShowFormat); err != nil {
			return err
		}
		sess, cfg := openSession(cmd.ErrOrStderr(), overrideFlags{format: flagShowFormat})
		if sess == nil {
			return nil
		}
		r, err := sess.Review(id)
		if err != nil {
			report(cmd.ErrOrStderr(), err)
			return nil
		}
		return printReview(cmd.OutOrStdout(), r, cfg.Format, cfg.ExcerptChars, flagShowFull)
	},
}

func checkReviewFormat(format string) error {
	switch format {
	case "", "text", "json", "yaml", "yml", "markdown", "md":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func printReview(w io.Writer, r reviews.Review, format string, excerptChars int, full bool) error {
	if err := checkReviewFormat(format); err != nil {
		return err
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	text := r.Text
	if !full {
		text = output.Excerpt(text, excerptChars)
	}
	if format == "markdown" || format == "md" {
		_, err := fmt.Fprintf(w, "## Review #%d\n\n> %s\n", r.ID, text)
		return err
	}
	_, err := fmt.Fprintf(w, "#%d\n%s\n", r.ID, text)
	return err
}

func init() {
	sampleCmd.Flags().BoolVar(&flagSampleFull, "full", false, "Show the full review text")
	sampleCmd.Flags().StringVar(&flagSampleFormat, "format", "", "Output format (text, json, yaml, markdown)")
	showCmd.Flags().BoolVar(&flagShowFull, "full", false, "Show the full review text")
	showCmd.Flags().StringVar(&flagShowFormat, "format", "", "Output format (text, json, yaml, markdown)")
}
