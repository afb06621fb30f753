package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/revsent/internal/analysis"
	"github.com/dshills/revsent/internal/config"
	"github.com/dshills/revsent/internal/providers"
	"github.com/dshills/revsent/internal/reviews"
	"github.com/dshills/revsent/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// resetFlags resets all package-level flag variables to their defaults.
func resetFlags() {
	flagReviews = ""
	flagVerbose = false
	flagSampleFull, flagSampleFormat = false, ""
	flagShowFull, flagShowFormat = false, ""
	flagAnalyzeID = -1
	flagAnalyzeKind = "all"
	flagAnalyzeToken = ""
	flagAnalyzeFull = false
	flagAnalyzeFormat = ""
	flagAnalyzeOut = ""
	flagServeAddr, flagServeToken = "", ""
	flagModelsListProvider, flagModelsListToken = "", ""
	flagModelsDoctorProvider, flagModelsDoctorToken = "", ""
}

// isolate points config, env and the classifier at test-local state.
func isolate(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range config.TokenEnvVars {
		t.Setenv(name, "")
	}
	t.Setenv("REVSENT_BASE_URL", baseURL)
	t.Setenv("REVSENT_FORMAT", "")
	t.Setenv("REVSENT_REVIEWS_FILE", "")
}

func writeTSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testTSV = "id\ttext\n" +
	"1\tThe headphones sound amazing and the case is sturdy.\n" +
	"2\tShipping took forever.\n"

func execute(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	resetFlags()
	return executeKeepFlags(t, args...)
}

// executeKeepFlags runs the root command without resetting flag values left
// by a previous run, the way repeated Execute calls behave in one process.
func executeKeepFlags(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	exitCode = ExitSuccess

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		code = ExitUsageError
	} else {
		code = exitCode
	}
	return out.String(), errOut.String(), code
}

// inferenceServer fakes both models. It records the last Authorization header.
func inferenceServer(t *testing.T, status int, auth *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":"status %d"}`, status)
			return
		}
		if strings.HasSuffix(r.URL.Path, providers.DefaultNounModel) {
			w.Write([]byte(`[{"entity_group":"NOUN","word":"headphones"},{"entity_group":"NOUN","word":"case"}]`))
			return
		}
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.97}]]`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVersion(t *testing.T) {
	out, _, code := execute(t, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "revsent version "+version+"\n", out)
}

func TestSample(t *testing.T) {
	isolate(t, "http://127.0.0.1:0/")
	path := writeTSV(t, testTSV)

	out, _, code := execute(t, "sample", "--reviews", path)
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(out, "#"), out)
}

func TestShow(t *testing.T) {
	isolate(t, "http://127.0.0.1:0/")
	path := writeTSV(t, testTSV)

	out, _, code := execute(t, "show", "1", "--reviews", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "#1\nShipping took forever.\n", out)

	out, _, code = execute(t, "show", "0", "--reviews", path, "--format", "json")
	assert.Equal(t, ExitSuccess, code)
	var r reviews.Review
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 0, r.ID)

	_, stderr, code := execute(t, "show", "9", "--reviews", path)
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "Review not found.")

	_, _, code = execute(t, "show", "abc", "--reviews", path)
	assert.Equal(t, ExitUsageError, code)
}

func TestReviewFormats(t *testing.T) {
	isolate(t, "http://127.0.0.1:0/")
	path := writeTSV(t, testTSV)

	out, _, code := execute(t, "show", "1", "--reviews", path, "--format", "yaml")
	assert.Equal(t, ExitSuccess, code)
	var r reviews.Review
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, reviews.Review{ID: 1, Text: "Shipping took forever."}, r)

	out, _, code = execute(t, "show", "1", "--reviews", path, "--format", "markdown")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "## Review #1\n\n> Shipping took forever.\n", out)

	out, stderr, code := execute(t, "sample", "--reviews", path, "--format", "sarif")
	assert.Equal(t, ExitUsageError, code)
	assert.NotContains(t, out, "#")
	assert.Contains(t, stderr, "unsupported output format: sarif")

	_, stderr, code = execute(t, "show", "0", "--reviews", path, "--format", "csv")
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr, "unsupported output format: csv")
}

func TestPrintReview_RejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := printReview(&buf, reviews.Review{ID: 3, Text: "ok"}, "html", 100, false)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestFlagsDoNotLeakAcrossCommands(t *testing.T) {
	server := inferenceServer(t, http.StatusOK, nil)
	isolate(t, server.URL)
	path := writeTSV(t, testTSV)

	out, _, code := execute(t, "analyze", "--reviews", path, "--id", "0", "--format", "json", "--full")
	require.Equal(t, ExitSuccess, code)
	require.True(t, json.Valid([]byte(out)), out)

	out, _, code = executeKeepFlags(t, "show", "1", "--reviews", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "#1\nShipping took forever.\n", out)
	assert.False(t, flagShowFull)
	assert.Empty(t, flagShowFormat)
}

func TestLoadErrors(t *testing.T) {
	isolate(t, "http://127.0.0.1:0/")

	_, stderr, code := execute(t, "sample", "--reviews", filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Equal(t, ExitRuntimeError, code)
	assert.Contains(t, stderr, "Error loading TSV:")

	path := writeTSV(t, "id\tbody\n1\tno text column\n")
	_, stderr, code = execute(t, "sample", "--reviews", path)
	assert.Equal(t, ExitNoReviews, code)
	assert.Contains(t, stderr, "Error loading TSV:")
}

func TestAnalyze(t *testing.T) {
	var auth string
	server := inferenceServer(t, http.StatusOK, &auth)
	isolate(t, server.URL)
	path := writeTSV(t, testTSV)

	out, stderr, code := execute(t, "analyze", "--reviews", path, "--id", "0", "--format", "json", "--token", "hf_cli")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Bearer hf_cli", auth)

	var decoded session.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 0, decoded.Review.ID)
	require.Len(t, decoded.Results, 2)
	require.NotNil(t, decoded.Sentiment())
	assert.Equal(t, analysis.Positive, decoded.Sentiment().Label)
	require.NotNil(t, decoded.Nouns())
	assert.Equal(t, 2, decoded.Nouns().Count)
}

func TestAnalyze_TextToFile(t *testing.T) {
	server := inferenceServer(t, http.StatusOK, nil)
	isolate(t, server.URL)
	path := writeTSV(t, testTSV)
	outPath := filepath.Join(t.TempDir(), "out.md")

	out, _, code := execute(t, "analyze", "--reviews", path, "--kind", "sentiment", "--format", "markdown", "--out", outPath)
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "👍 Positive (0.970)")
	assert.NotContains(t, string(data), "| nouns |")
}

func TestAnalyze_AuthError(t *testing.T) {
	server := inferenceServer(t, http.StatusUnauthorized, nil)
	isolate(t, server.URL)
	path := writeTSV(t, testTSV)

	_, stderr, code := execute(t, "analyze", "--reviews", path, "--kind", "sentiment")
	assert.Equal(t, ExitAuthError, code)
	assert.Contains(t, stderr, "Analysis error: HTTP 401: status 401. You may retry")
}

func TestAnalyze_BadFlags(t *testing.T) {
	isolate(t, "http://127.0.0.1:0/")
	path := writeTSV(t, testTSV)

	_, _, code := execute(t, "analyze", "--reviews", path, "--kind", "topics")
	assert.Equal(t, ExitUsageError, code)

	_, _, code = execute(t, "analyze", "--reviews", path, "--format", "sarif")
	assert.Equal(t, ExitUsageError, code)
}

func TestModelsList(t *testing.T) {
	isolate(t, "https://example.test/models/")

	out, _, code := execute(t, "models", "list", "--token", "hf_abcdefghijklmnop")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "huggingface:")
	assert.Contains(t, out, "https://example.test/models/"+providers.DefaultSentimentModel)
	assert.Contains(t, out, providers.DefaultNounModel)
	assert.NotContains(t, out, "hf_abcdefghijklmnop")
}

func TestModelsDoctor(t *testing.T) {
	server := inferenceServer(t, http.StatusOK, nil)
	isolate(t, server.URL)

	out, _, code := execute(t, "models", "doctor")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "OK: huggingface")

	failing := inferenceServer(t, http.StatusForbidden, nil)
	t.Setenv("REVSENT_BASE_URL", failing.URL)
	_, stderr, code := execute(t, "models", "doctor")
	assert.Equal(t, ExitAuthError, code)
	assert.Contains(t, stderr, "FAIL: HTTP 403")
}

func TestConfigSetAndShow(t *testing.T) {
	isolate(t, "")

	out, _, code := execute(t, "config", "set", "excerptChars", "99")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Set excerptChars = 99\n", out)

	loaded, err := config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, 99, loaded.ExcerptChars)
	assert.Equal(t, config.Default().ReviewsFile, loaded.ReviewsFile)

	out, _, code = execute(t, "config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, `"excerptChars": 99`)
	assert.Contains(t, out, "token: not set")

	_, _, code = execute(t, "config", "set", "bogus", "1")
	assert.Equal(t, ExitUsageError, code)
}

func TestExitFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"no reviews", reviews.ErrNoReviews, ExitNoReviews},
		{"empty review", reviews.ErrEmptyReview, ExitNoReviews},
		{"not found", fmt.Errorf("x: %w", reviews.ErrReviewNotFound), ExitUsageError},
		{"unknown kind", analysis.ErrUnknownKind, ExitUsageError},
		{"busy", session.ErrBusy, ExitBusy},
		{"auth", &analysis.ClassificationError{Err: &providers.StatusError{StatusCode: 401}}, ExitAuthError},
		{"server", &analysis.ClassificationError{Err: &providers.StatusError{StatusCode: 503}}, ExitRuntimeError},
		{"other", errors.New("boom"), ExitRuntimeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitFor(tt.err))
		})
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("all")
	require.NoError(t, err)
	assert.Nil(t, kinds)

	kinds, err = parseKinds("Nouns")
	require.NoError(t, err)
	assert.Equal(t, []analysis.Kind{analysis.KindNouns}, kinds)

	_, err = parseKinds("topics")
	assert.ErrorIs(t, err, analysis.ErrUnknownKind)
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	assert.Empty(t, buildOverrides(overrideFlags{}))

	flagReviews = "r.tsv"
	defer resetFlags()
	assert.Equal(t, map[string]string{
		"reviewsFile": "r.tsv",
		"token":       "hf_x",
		"server.addr": ":9",
	}, buildOverrides(overrideFlags{token: "hf_x", addr: ":9"}))
	assert.Equal(t, map[string]string{
		"reviewsFile": "r.tsv",
		"format":      "yaml",
		"provider":    "huggingface",
	}, buildOverrides(overrideFlags{format: "yaml", provider: "huggingface"}))
}
