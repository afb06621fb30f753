package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/redact"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL        = "https://api-inference.huggingface.co/models/"
	DefaultSentimentModel = "siebert/sentiment-roberta-large-english"
	DefaultNounModel      = "vblagoje/bert-english-uncased-finetuned-pos"

	defaultTimeout = 60 * time.Second
)

// HuggingFace implements analysis.Classifier over the Hugging Face Inference API.
type HuggingFace struct {
	token        string
	baseURL      string
	models       map[analysis.Kind]string
	client       *http.Client
	maxRetries   int
	backoff      time.Duration
	waitForModel bool
	logger       *zap.Logger
}

// NewHuggingFace creates a Hugging Face provider.
func NewHuggingFace(opts Options) *HuggingFace {
	h := &HuggingFace{
		token:   strings.TrimSpace(opts.Token),
		baseURL: opts.BaseURL,
		models: map[analysis.Kind]string{
			analysis.KindSentiment: opts.SentimentModel,
			analysis.KindNouns:     opts.NounModel,
		},
		client:       opts.HTTPClient,
		maxRetries:   opts.MaxRetries,
		backoff:      time.Second,
		waitForModel: opts.WaitForModel,
		logger:       opts.Logger,
	}
	if h.baseURL == "" {
		h.baseURL = DefaultBaseURL
	}
	if h.models[analysis.KindSentiment] == "" {
		h.models[analysis.KindSentiment] = DefaultSentimentModel
	}
	if h.models[analysis.KindNouns] == "" {
		h.models[analysis.KindNouns] = DefaultNounModel
	}
	if h.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		h.client = &http.Client{Timeout: timeout}
	}
	if h.maxRetries < 0 {
		h.maxRetries = 0
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

func (h *HuggingFace) Name() string { return "huggingface" }

// Endpoint returns the model URL used for kind.
func (h *HuggingFace) Endpoint(kind analysis.Kind) (string, error) {
	model, ok := h.models[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", analysis.ErrUnknownKind, kind)
	}
	return strings.TrimRight(h.baseURL, "/") + "/" + model, nil
}

func (h *HuggingFace) Classify(ctx context.Context, req analysis.Request) ([]byte, error) {
	url, err := h.Endpoint(req.Kind)
	if err != nil {
		return nil, err
	}

	body := hfRequest{Inputs: req.Text}
	if req.Kind == analysis.KindNouns {
		body.Parameters = &hfParameters{AggregationStrategy: "simple"}
	}
	if h.waitForModel {
		body.Options = &hfOptions{WaitForModel: true}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	token := req.Token
	if token == "" {
		token = h.token
	}

	var respBody []byte
	attempt := 0
	err = retryWithBackoff(ctx, h.maxRetries, h.backoff, func() error {
		attempt++
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}

		start := time.Now()
		httpResp, err := h.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		h.logger.Debug("inference response",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("status", httpResp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))

		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			return &StatusError{StatusCode: httpResp.StatusCode, Detail: errorDetail(data)}
		}
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("parsing response: body is not valid JSON")
		}

		respBody = data
		return nil
	})
	if err != nil {
		h.logger.Debug("inference request failed",
			zap.String("url", url),
			zap.String("error", redact.Secrets(err.Error())))
		return nil, err
	}
	return respBody, nil
}

// errorDetail pulls a human-readable message out of an error body. The API
// reports problems under "error" (string or list of strings) or "message".
func errorDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, field := range []string{"error", "message"} {
		r := gjson.GetBytes(body, field)
		switch {
		case r.Type == gjson.String && r.Str != "":
			return r.Str
		case r.IsArray():
			var parts []string
			for _, item := range r.Array() {
				if s := item.String(); s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
	}
	return ""
}

type hfRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters *hfParameters `json:"parameters,omitempty"`
	Options    *hfOptions    `json:"options,omitempty"`
}

type hfParameters struct {
	AggregationStrategy string `json:"aggregation_strategy,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
}
