package resp_test

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchback-web/switchback/http/resp"
	"github.com/switchback-web/switchback/logger"
)

func quietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(os.Stdout, "", 0)), logger.WithLevel(logger.LogLevelFatal))
}

func TestResponderJson(t *testing.T) {
	d := resp.NewResponder(resp.WithLogger(quietLogger()))

	t.Run("Defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := d.Json(w, r, resp.Data(map[string]string{"message": "pong"}))
		require.Nil(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	})

	t.Run("Code", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		err := d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(map[string]bool{"ok": true}))
		require.Nil(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("NoData", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := d.Json(w, r, resp.Data(nil))
		require.ErrorIs(t, err, resp.ErrMissingData)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("CtxDone", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

		err := d.Json(w, r, resp.Data("whatever"))
		require.ErrorIs(t, err, resp.ErrDone)
	})
}

func TestResponderErr(t *testing.T) {
	d := resp.NewResponder(resp.WithLogger(quietLogger()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	d.Err(w, r, resp.ErrInvalid)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), resp.ErrInvalid.Error())
}

func TestResponderJsonEncodes(t *testing.T) {
	d := resp.NewResponder(resp.WithLogger(quietLogger()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.Nil(t, d.Json(w, r, resp.Data(payload{Name: "n", Count: 3})))

	var got payload
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, payload{Name: "n", Count: 3}, got)
}
