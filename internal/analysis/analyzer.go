package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/revsent/internal/cache"
	"github.com/dshills/revsent/internal/redact"
	"github.com/dshills/revsent/internal/reviews"
	"go.uber.org/zap"
)

// ResultCache is the cache type held by an Analyzer.
type ResultCache = cache.Cache[Key, *Result]

// NewCache returns an empty result cache.
func NewCache() *ResultCache {
	return cache.New[Key, *Result]()
}

// Analyzer computes and memoizes analysis results.
type Analyzer struct {
	reviews    ReviewSource
	classifier Classifier
	cache      *ResultCache
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache makes the analyzer use c instead of a private cache.
func WithCache(c *ResultCache) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.cache = c
		}
	}
}

// WithLogger sets the analyzer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer over the given reviews and classifier.
func New(source ReviewSource, classifier Classifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		reviews:    source,
		classifier: classifier,
		cache:      NewCache(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetOrCompute returns the result for (reviewID, kind), calling the
// classifier only on a cache miss.
func (a *Analyzer) GetOrCompute(ctx context.Context, reviewID int, kind Kind) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	key := Key{ReviewID: reviewID, Kind: kind}

	if result, ok := a.cache.Get(key); ok {
		a.logger.Debug("cache hit", zap.Stringer("key", key))
		return result, nil
	}

	review, ok := a.reviews.Get(reviewID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", reviews.ErrReviewNotFound, reviewID)
	}

	token := TokenFrom(ctx)
	a.logger.Debug("cache miss, calling classifier",
		zap.Stringer("key", key),
		zap.Int("chars", len(review.Text)),
		zap.String("token", redact.Mask(token)))

	start := time.Now()
	payload, err := a.classifier.Classify(ctx, Request{Text: review.Text, Kind: kind, Token: token})
	if err != nil {
		cerr := newClassificationError(key, err)
		a.logger.Warn("classification failed", zap.Stringer("key", key), zap.String("error", cerr.Message))
		return nil, cerr
	}

	result, err := parse(key, payload)
	if err != nil {
		cerr := newClassificationError(key, err)
		a.logger.Warn("unusable classifier payload", zap.Stringer("key", key), zap.String("error", cerr.Message))
		return nil, cerr
	}

	a.logger.Debug("classified",
		zap.Stringer("key", key),
		zap.Duration("elapsed", time.Since(start)))

	return a.cache.PutIfAbsent(key, result), nil
}

// Cached reports whether (reviewID, kind) already has a result.
func (a *Analyzer) Cached(reviewID int, kind Kind) bool {
	return a.cache.Contains(Key{ReviewID: reviewID, Kind: kind})
}

// CacheStats returns the result cache counters.
func (a *Analyzer) CacheStats() cache.Stats {
	return a.cache.Stats()
}
