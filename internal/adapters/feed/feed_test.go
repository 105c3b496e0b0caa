package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jobhawk/jobhawk/internal/errors"
)

func TestAdapter_FetchCustomShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {
				"listings": [
					{
						"jobId": 4401,
						"role": "Platform Engineer",
						"employer": {"name": "Globex"},
						"summary": "Build the internal platform.",
						"pay": "$130k",
						"link": "https://globex.example/jobs/4401"
					},
					{"jobId": 4402, "role": "SRE"}
				]
			}
		}`))
	}))
	defer srv.Close()

	adapter, err := New(Config{
		Platform:  "Globex Careers",
		URL:       srv.URL,
		ItemsPath: "data.listings",
		Fields: FieldPaths{
			ExternalID:  "jobId",
			Title:       "role",
			Company:     "employer.name",
			Description: "summary",
			SalaryText:  "pay",
			URL:         "link",
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "globex careers", adapter.Platform())

	postings, err := adapter.Fetch(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, postings, 1, "the item without an employer is dropped")
	p := postings[0]
	assert.Equal(t, "4401", p.ExternalID, "numeric ids are coerced to strings")
	assert.Equal(t, "Platform Engineer", p.Title)
	assert.Equal(t, "Globex", p.Company)
	assert.Equal(t, "$130k", p.SalaryText)
}

func TestAdapter_FetchDefaultShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [
			{"id": "a1", "title": "DevOps Engineer", "company": "Acme", "location": "Remote"}
		]}`))
	}))
	defer srv.Close()

	adapter, err := New(Config{Platform: "acme", URL: srv.URL}, nil)
	require.NoError(t, err)

	postings, err := adapter.Fetch(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Remote", postings[0].Location)
}

func TestNew_InvalidExpression(t *testing.T) {
	t.Parallel()

	_, err := New(Config{
		Platform:  "acme",
		URL:       "https://feed.example",
		ItemsPath: "jobs[",
	}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAdapter_FetchItemsPathNotArray(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": {"oops": true}}`))
	}))
	defer srv.Close()

	adapter, err := New(Config{Platform: "acme", URL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = adapter.Fetch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsSource(err))
}
