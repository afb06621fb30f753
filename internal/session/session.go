package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/reviews"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// MaxSampleAttempts bounds the draws made by Sample looking for a non-blank review.
const MaxSampleAttempts = 20

// ErrBusy is returned when another analysis is still running.
var ErrBusy = errors.New("an analysis is already in progress")

// KindResult is the outcome of one analysis kind.
type KindResult struct {
	Kind      analysis.Kind             `json:"kind" yaml:"kind"`
	Sentiment *analysis.SentimentResult `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Nouns     *analysis.NounCountResult `json:"nouns,omitempty" yaml:"nouns,omitempty"`
	CacheHit  bool                      `json:"cacheHit" yaml:"cacheHit"`
}

// Outcome is everything produced by one Analyze call.
type Outcome struct {
	RequestID string         `json:"requestId" yaml:"requestId"`
	Review    reviews.Review `json:"review" yaml:"review"`
	Results   []KindResult   `json:"results" yaml:"results"`
	ElapsedMs int64          `json:"elapsedMs" yaml:"elapsedMs"`
	Elapsed   time.Duration  `json:"-" yaml:"-"`
}

// Sentiment returns the sentiment result, if one was requested.
func (o *Outcome) Sentiment() *analysis.SentimentResult {
	for _, r := range o.Results {
		if r.Sentiment != nil {
			return r.Sentiment
		}
	}
	return nil
}

// Nouns returns the noun count result, if one was requested.
func (o *Outcome) Nouns() *analysis.NounCountResult {
	for _, r := range o.Results {
		if r.Nouns != nil {
			return r.Nouns
		}
	}
	return nil
}

// Session serializes analyses over a review store.
type Session struct {
	store    *reviews.Store
	analyzer *analysis.Analyzer
	inflight *semaphore.Weighted
	logger   *zap.Logger
}

// New creates a Session. A nil logger disables logging.
func New(store *reviews.Store, analyzer *analysis.Analyzer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:    store,
		analyzer: analyzer,
		inflight: semaphore.NewWeighted(1),
		logger:   logger,
	}
}

// Store returns the underlying review store.
func (s *Session) Store() *reviews.Store { return s.store }

// Analyzer returns the underlying analyzer.
func (s *Session) Analyzer() *analysis.Analyzer { return s.analyzer }

// Sample draws a random non-blank review.
func (s *Session) Sample() (reviews.Review, error) {
	if s.store.Len() == 0 {
		return reviews.Review{}, reviews.ErrNoReviews
	}
	for range MaxSampleAttempts {
		r, ok := s.store.Sample()
		if !ok {
			return reviews.Review{}, reviews.ErrNoReviews
		}
		if r.Text != "" {
			return r, nil
		}
	}
	return reviews.Review{}, reviews.ErrEmptyReview
}

// Review returns the review with the given id.
func (s *Session) Review(id int) (reviews.Review, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return reviews.Review{}, fmt.Errorf("%w: id %d", reviews.ErrReviewNotFound, id)
	}
	return r, nil
}

// AnalyzeRandom samples a review and analyzes it.
func (s *Session) AnalyzeRandom(ctx context.Context, kinds ...analysis.Kind) (*Outcome, error) {
	r, err := s.Sample()
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, r.ID, kinds...)
}

// Analyze runs the requested kinds (all kinds when none are given) against
// one review. Kinds run one after another in the requested order, so at most
// one classifier request is outstanding; the first failure is returned.
func (s *Session) Analyze(ctx context.Context, reviewID int, kinds ...analysis.Kind) (*Outcome, error) {
	kinds, err := normalizeKinds(kinds)
	if err != nil {
		return nil, err
	}
	review, err := s.Review(reviewID)
	if err != nil {
		return nil, err
	}

	if !s.inflight.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.inflight.Release(1)

	out := &Outcome{
		RequestID: uuid.NewString(),
		Review:    review,
		Results:   make([]KindResult, len(kinds)),
	}
	log := s.logger.With(zap.String("request_id", out.RequestID), zap.Int("review_id", reviewID))
	start := time.Now()

	for i, kind := range kinds {
		hit := s.analyzer.Cached(reviewID, kind)
		res, err := s.analyzer.GetOrCompute(ctx, reviewID, kind)
		if err != nil {
			log.Info("analysis failed", zap.String("kind", string(kind)), zap.Error(err))
			return nil, err
		}
		out.Results[i] = KindResult{
			Kind:      res.Kind,
			Sentiment: res.Sentiment,
			Nouns:     res.Nouns,
			CacheHit:  hit,
		}
	}

	out.Elapsed = time.Since(start)
	out.ElapsedMs = out.Elapsed.Milliseconds()
	log.Info("analysis complete",
		zap.Int("kinds", len(kinds)),
		zap.Duration("elapsed", out.Elapsed))
	return out, nil
}

func normalizeKinds(kinds []analysis.Kind) ([]analysis.Kind, error) {
	if len(kinds) == 0 {
		return append([]analysis.Kind(nil), analysis.Kinds...), nil
	}
	seen := make(map[analysis.Kind]bool, len(kinds))
	out := make([]analysis.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %q", analysis.ErrUnknownKind, k)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}
