package schema_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/schema"
)

type registration struct {
	Username string `json:"username" validate:"min=4"`
	Password string `json:"password" validate:"min=6"`
}

type listParams struct {
	Limit  int    `schema:"limit" validate:"omitempty,min=1,max=100"`
	Filter string `schema:"filter"`
}

func TestStructSafeParseJSON(t *testing.T) {
	v := schema.Struct[registration]()

	t.Run("Success", func(t *testing.T) {
		data, issues, err := v.SafeParse(json.RawMessage(`{"username":"jane","password":"secret1"}`))
		require.Nil(t, err)
		require.Nil(t, issues)

		reg, ok := data.(registration)
		require.True(t, ok)
		assert.Equal(t, "jane", reg.Username)
	})

	t.Run("Issues", func(t *testing.T) {
		_, issues, err := v.SafeParse(json.RawMessage(`{"username":"joe","password":"123"}`))
		require.Nil(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, "username", issues[0].Attribute())
		assert.Equal(t, "password", issues[1].Attribute())
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, issues, err := v.SafeParse(json.RawMessage(nil))
		require.Nil(t, err)
		require.Len(t, issues, 2)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, issues, err := v.SafeParse(json.RawMessage(`{"username":`))
		require.Nil(t, err)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "malformed JSON")
	})
}

func TestStructSafeParseForm(t *testing.T) {
	v := schema.Struct[listParams]()

	t.Run("Coerces", func(t *testing.T) {
		data, issues, err := v.SafeParse(url.Values{"limit": []string{"5"}, "filter": []string{"new"}})
		require.Nil(t, err)
		require.Nil(t, issues)

		lp, ok := data.(listParams)
		require.True(t, ok)
		assert.Equal(t, 5, lp.Limit)
		assert.Equal(t, "new", lp.Filter)
	})

	t.Run("Conversion", func(t *testing.T) {
		_, issues, err := v.SafeParse(url.Values{"limit": []string{"lots"}})
		require.Nil(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "limit", issues[0].Attribute())
		assert.Contains(t, issues[0].Message, "must be int")
	})

	t.Run("Range", func(t *testing.T) {
		_, issues, err := v.SafeParse(url.Values{"limit": []string{"9000"}})
		require.Nil(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "limit", issues[0].Attribute())
	})

	t.Run("UnknownKeysIgnored", func(t *testing.T) {
		_, issues, err := v.SafeParse(url.Values{"nope": []string{"whatever"}})
		require.Nil(t, err)
		require.Nil(t, issues)
	})

	t.Run("ParamsMap", func(t *testing.T) {
		data, issues, err := v.SafeParse(map[string]string{"limit": "7"})
		require.Nil(t, err)
		require.Nil(t, issues)
		assert.Equal(t, 7, data.(listParams).Limit)
	})
}

func TestStructSafeParseDirect(t *testing.T) {
	v := schema.Struct[registration]()

	data, issues, err := v.SafeParse(registration{Username: "jane", Password: "secret1"})
	require.Nil(t, err)
	require.Nil(t, issues)
	assert.Equal(t, "jane", data.(registration).Username)

	_, _, err = v.SafeParse(42)
	require.ErrorIs(t, err, switchback.ErrBadAny)
}

type size string

func (s size) String() string { return string(s) }

func (s size) Valid() error {
	switch s {
	case "small", "large":
		return nil
	default:
		return switchback.ErrNotValid
	}
}

func TestStructSafeParseEnum(t *testing.T) {
	type order struct {
		Size size `json:"size" validate:"enum"`
	}

	v := schema.Struct[order]()

	_, issues, err := v.SafeParse(json.RawMessage(`{"size":"large"}`))
	require.Nil(t, err)
	require.Nil(t, issues)

	_, issues, err = v.SafeParse(json.RawMessage(`{"size":"gigantic"}`))
	require.Nil(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "size", issues[0].Attribute())
}
