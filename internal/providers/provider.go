package providers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dshills/revsent/internal/analysis"
	"go.uber.org/zap"
)

// Provider is a named classifier backend.
type Provider interface {
	analysis.Classifier
	Name() string
}

// Options configures a provider. Zero values select defaults.
type Options struct {
	BaseURL        string
	SentimentModel string
	NounModel      string
	// Token is used when a request carries no token of its own.
	Token        string
	Timeout      time.Duration
	MaxRetries   int
	WaitForModel bool
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// New creates a provider by name.
func New(name string, opts Options) (Provider, error) {
	switch name {
	case "huggingface", "hf", "":
		return NewHuggingFace(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
