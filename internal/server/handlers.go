package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/providers"
	"github.com/dshills/revsent/internal/reviews"
	"github.com/dshills/revsent/internal/session"
	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	ReviewID *int     `json:"reviewId"`
	Kinds    []string `json:"kinds"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) reviewCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": s.sess.Store().Len()})
}

func (s *Server) sampleReview(c *gin.Context) {
	r, err := s.sess.Sample()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) getReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review id must be an integer"})
		return
	}
	r, err := s.sess.Review(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	kinds := make([]analysis.Kind, 0, len(req.Kinds))
	for _, name := range req.Kinds {
		k, err := analysis.ParseKind(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kinds = append(kinds, k)
	}

	ctx := c.Request.Context()
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		ctx = analysis.WithToken(ctx, token)
	}

	var (
		out *session.Outcome
		err error
	)
	if req.ReviewID != nil {
		out, err = s.sess.Analyze(ctx, *req.ReviewID, kinds...)
	} else {
		out, err = s.sess.AnalyzeRandom(ctx, kinds...)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.sess.Analyzer().CacheStats())
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": session.UserMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, reviews.ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, reviews.ErrNoReviews), errors.Is(err, reviews.ErrEmptyReview):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case providers.IsAuthError(err):
		return http.StatusUnauthorized
	case providers.IsRateLimited(err):
		return http.StatusTooManyRequests
	case analysis.IsClassificationError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
