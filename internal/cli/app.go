package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/config"
	"github.com/dshills/revsent/internal/providers"
	"github.com/dshills/revsent/internal/reviews"
	"github.com/dshills/revsent/internal/session"
)

// overrideFlags holds the config-overriding flag values of one command.
type overrideFlags struct {
	token    string
	format   string
	addr     string
	provider string
}

func buildOverrides(f overrideFlags) map[string]string {
	m := make(map[string]string)
	if flagReviews != "" {
		m["reviewsFile"] = flagReviews
	}
	if f.token != "" {
		m["token"] = f.token
	}
	if f.format != "" {
		m["format"] = f.format
	}
	if f.addr != "" {
		m["server.addr"] = f.addr
	}
	if f.provider != "" {
		m["provider"] = f.provider
	}
	return m
}

func newProvider(cfg config.Config) (providers.Provider, error) {
	return providers.New(cfg.Provider, providers.Options{
		BaseURL:        cfg.BaseURL,
		SentimentModel: cfg.SentimentModel,
		NounModel:      cfg.NounModel,
		Token:          cfg.Token,
		Timeout:        cfg.Timeout(),
		MaxRetries:     cfg.MaxRetries,
		WaitForModel:   cfg.WaitForModel,
		Logger:         logger.Named("provider"),
	})
}

// openSession loads the reviews file and wires the classifier. Failures are
// reported to stderr and recorded in exitCode; the returned session is nil.
func openSession(stderr io.Writer, f overrideFlags) (*session.Session, config.Config) {
	cfg, err := config.Load(buildOverrides(f))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil, cfg
	}

	store, err := session.LoadStore(cfg.ReviewsFile)
	if err != nil {
		report(stderr, err)
		return nil, cfg
	}
	logger.Debug("reviews loaded")

	p, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil, cfg
	}

	a := analysis.New(store, p, analysis.WithLogger(logger.Named("analysis")))
	return session.New(store, a, logger.Named("session")), cfg
}

// report prints the user-facing message for err and sets the exit code.
func report(stderr io.Writer, err error) {
	fmt.Fprintln(stderr, session.UserMessage(err))
	exitCode = exitFor(err)
}

func exitFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, reviews.ErrNoReviews), errors.Is(err, reviews.ErrEmptyReview):
		return ExitNoReviews
	case errors.Is(err, analysis.ErrUnknownKind), errors.Is(err, reviews.ErrReviewNotFound):
		return ExitUsageError
	case errors.Is(err, session.ErrBusy):
		return ExitBusy
	case providers.IsAuthError(err):
		return ExitAuthError
	default:
		return ExitRuntimeError
	}
}

// parseKinds maps the --kind flag to analysis kinds; "all" or empty selects every kind.
func parseKinds(s string) ([]analysis.Kind, error) {
	if s == "" || s == "all" {
		return nil, nil
	}
	k, err := analysis.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []analysis.Kind{k}, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("review id must be a non-negative integer, got %q", s)
	}
	return id, nil
}
