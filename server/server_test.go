package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/match"
)

type stubService struct {
	matchFn     func(ctx context.Context, sub core.Submission) ([]core.MatchResult, error)
	unmatchedFn func(sub core.Submission) ([]string, error)
	uploadFn    func(ctx context.Context, filename string, source []byte) (catalog.Stats, error)
	statsFn     func() (catalog.Stats, error)
	listFn      func(ctx context.Context, limit int) ([]*core.CatalogRevision, error)
}

func (s *stubService) Match(ctx context.Context, sub core.Submission) ([]core.MatchResult, error) {
	return s.matchFn(ctx, sub)
}

func (s *stubService) Unmatched(sub core.Submission) ([]string, error) {
	if s.unmatchedFn == nil {
		return nil, nil
	}
	return s.unmatchedFn(sub)
}

func (s *stubService) UploadCatalog(ctx context.Context, filename string, source []byte) (catalog.Stats, error) {
	return s.uploadFn(ctx, filename, source)
}

func (s *stubService) Stats() (catalog.Stats, error) {
	return s.statsFn()
}

func (s *stubService) Revisions(ctx context.Context, limit int) ([]*core.CatalogRevision, error) {
	return s.listFn(ctx, limit)
}

func okStats() (catalog.Stats, error) {
	return catalog.Stats{
		AnswersCount:    10,
		AlignmentsCount: 4,
		Revision:        core.ID(7),
		UpdatedAt:       time.Now().UTC(),
	}, nil
}

func newTestServer(t *testing.T, service AlignmentService) *Server {
	t.Helper()
	server, err := NewServer(service, "127.0.0.1:0", nil)
	require.NoError(t, err)
	return server
}

func TestNewServer_NilService(t *testing.T) {
	_, err := NewServer(nil, "127.0.0.1:0", nil)
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t, &stubService{statsFn: okStats})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.CatalogLoaded)
}

func TestHandleHealth_NoCatalog(t *testing.T) {
	server := newTestServer(t, &stubService{
		statsFn: func() (catalog.Stats, error) { return catalog.Stats{}, match.ErrNotLoaded },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.CatalogLoaded)
}

func TestHandleMatch(t *testing.T) {
	var gotSubmission core.Submission
	server := newTestServer(t, &stubService{
		matchFn: func(_ context.Context, sub core.Submission) ([]core.MatchResult, error) {
			gotSubmission = sub
			return []core.MatchResult{{
				ID: "POLARITY_RED_BLUE", Type: core.AlignmentPolarity,
				MatchTier: core.TierExact, Confidence: 1.0,
			}}, nil
		},
		unmatchedFn: func(core.Submission) ([]string, error) {
			return []string{"Green"}, nil
		},
	})

	body := `{"answers":[{"question":"Pick a color","answers":["Red","Blue"],` +
		`"sub_questions":[{"sub_question":"Backup?","sub_answers":["Green"]}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "POLARITY_RED_BLUE", resp.Matches[0].ID)
	assert.Equal(t, core.TierExact, resp.Matches[0].MatchTier)
	assert.Equal(t, []string{"Green"}, resp.Unmatched)

	require.Len(t, gotSubmission.Questions, 1)
	assert.Equal(t, []string{"Red", "Blue"}, gotSubmission.Questions[0].Answers)
	require.Len(t, gotSubmission.Questions[0].SubQuestions, 1)
	assert.Equal(t, []string{"Green"}, gotSubmission.Questions[0].SubQuestions[0].Answers)
}

func TestHandleMatch_EmptyResultIsJSONArray(t *testing.T) {
	server := newTestServer(t, &stubService{
		matchFn: func(context.Context, core.Submission) ([]core.MatchResult, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(`{"answers":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"matches":[]`)
}

func TestHandleMatch_NoCatalog(t *testing.T) {
	server := newTestServer(t, &stubService{
		matchFn: func(context.Context, core.Submission) ([]core.MatchResult, error) {
			return nil, match.ErrNotLoaded
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(`{"answers":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleUpload(t *testing.T) {
	var gotFilename string
	var gotSource []byte
	server := newTestServer(t, &stubService{
		uploadFn: func(_ context.Context, filename string, source []byte) (catalog.Stats, error) {
			gotFilename = filename
			gotSource = source
			stats, _ := okStats()
			return stats, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog?filename=v2.csv",
		strings.NewReader("Answer_ID,Answer_Text\n"))
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v2.csv", gotFilename)
	assert.Equal(t, []byte("Answer_ID,Answer_Text\n"), gotSource)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.AnswersCount)
	assert.Equal(t, 4, resp.AlignmentsCount)
	assert.Equal(t, core.ID(7).String(), resp.Revision)
}

func TestHandleUpload_BadCatalog(t *testing.T) {
	server := newTestServer(t, &stubService{
		uploadFn: func(context.Context, string, []byte) (catalog.Stats, error) {
			return catalog.Stats{}, catalog.ErrMissingColumn
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog", strings.NewReader("nope"))
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRevisions(t *testing.T) {
	server := newTestServer(t, &stubService{
		listFn: func(context.Context, int) ([]*core.CatalogRevision, error) {
			return []*core.CatalogRevision{{
				Id: core.ID(7), Filename: "v2.csv", AnswersCount: 10,
				AlignmentsCount: 4, UploadedAt: time.Now().UTC(),
			}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/revisions", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var infos []RevisionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "v2.csv", infos[0].Filename)
	assert.Equal(t, core.ID(7).String(), infos[0].Revision)
}

