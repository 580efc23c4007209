package resp_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchback-web/switchback/http/resp"
	"github.com/switchback-web/switchback/http/schema"
)

func TestValidation(t *testing.T) {
	d := resp.NewResponder(resp.WithLogger(quietLogger()))
	respond := resp.Validation(d)

	t.Run("PassesThroughOtherErrors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		handled := respond(w, r, errors.New("not a validation failure"))
		require.False(t, handled)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("WireShape", func(t *testing.T) {
		failure := &schema.Failure{
			Message: "Validation Error",
			Surface: schema.SurfaceBody,
			Issues: []schema.Issue{
				{Path: []string{"body", "name"}, Message: "too short"},
			},
			Request: schema.Snapshot{
				Body:    map[string]any{"name": "a"},
				Query:   map[string]string{},
				Params:  map[string]string{},
				Headers: map[string]string{},
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/products", nil)

		handled := respond(w, r, failure)
		require.True(t, handled)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var got struct {
			Error   bool `json:"error"`
			Content struct {
				Message string `json:"message"`
				Request struct {
					Body    map[string]any    `json:"body"`
					Query   map[string]string `json:"query"`
					Params  map[string]string `json:"params"`
					Headers map[string]string `json:"headers"`
				} `json:"request"`
				SchemaIssues []struct {
					Attribute string `json:"attribute"`
					Error     string `json:"error"`
				} `json:"schemaIssues"`
			} `json:"content"`
		}
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &got))

		assert.True(t, got.Error)
		assert.Equal(t, "Validation Error", got.Content.Message)
		assert.Equal(t, "a", got.Content.Request.Body["name"])
		require.Len(t, got.Content.SchemaIssues, 1)
		assert.Equal(t, "body.name", got.Content.SchemaIssues[0].Attribute)
		assert.Equal(t, "too short", got.Content.SchemaIssues[0].Error)
	})

	t.Run("WrappedFailure", func(t *testing.T) {
		// errors.As digs a *schema.Failure out of a wrapped chain
		failure := &schema.Failure{Message: "Validation Error", Issues: []schema.Issue{{Path: []string{"query", "limit"}, Message: "must be int"}}}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		handled := respond(w, r, errors.Join(failure))
		require.True(t, handled)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
