package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/config"
	"github.com/dshills/revsent/internal/providers"
	"github.com/dshills/revsent/internal/redact"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the configured classification models",
}

// endpointer is implemented by providers that expose per-kind model URLs.
type endpointer interface {
	Endpoint(kind analysis.Kind) (string, error)
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the model used for each analysis kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(overrideFlags{
			token:    flagModelsListToken,
			provider: flagModelsListProvider,
		}))
		if err != nil {
			return err
		}
		p, err := newProvider(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s:\n", p.Name())
		for _, kind := range analysis.Kinds {
			model := cfg.SentimentModel
			if kind == analysis.KindNouns {
				model = cfg.NounModel
			}
			fmt.Fprintf(w, "  - %-9s %s\n", kind, model)
			if ep, ok := p.(endpointer); ok {
				if url, err := ep.Endpoint(kind); err == nil {
					fmt.Fprintf(w, "              %s\n", url)
				}
			}
		}
		fmt.Fprintf(w, "token: %s\n", tokenStatus(cfg.Token))
		return nil
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that every model is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(overrideFlags{
			token:    flagModelsDoctorToken,
			provider: flagModelsDoctorProvider,
		}))
		if err != nil {
			return err
		}
		p, err := newProvider(cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		for _, kind := range analysis.Kinds {
			fmt.Fprintf(cmd.OutOrStdout(), "Checking %s...\n", kind)
			_, err := p.Classify(ctx, analysis.Request{Text: "The product works well.", Kind: kind, Token: cfg.Token})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", redact.Secrets(err.Error()))
				if providers.IsAuthError(err) {
					exitCode = ExitAuthError
				} else {
					exitCode = ExitRuntimeError
				}
				return nil
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s is configured and responding\n", p.Name())
		return nil
	},
}

func tokenStatus(token string) string {
	if token == "" {
		return "not set (anonymous requests are rate-limited)"
	}
	return redact.Mask(token)
}

// models flags
var (
	flagModelsListProvider   string
	flagModelsListToken      string
	flagModelsDoctorProvider string
	flagModelsDoctorToken    string
)

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)

	modelsListCmd.Flags().StringVar(&flagModelsListProvider, "provider", "", "Provider to list")
	modelsListCmd.Flags().StringVar(&flagModelsListToken, "token", "", "API token (default: $HF_TOKEN)")
	modelsDoctorCmd.Flags().StringVar(&flagModelsDoctorProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().StringVar(&flagModelsDoctorToken, "token", "", "API token (default: $HF_TOKEN)")
}
