package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestQueryPrefix(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/", ""},
		{"/?prefix=films", "films/"},
		{"/?prefix=films/", "films/"},
		{"/?prefix=/films/2024", "films/2024/"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c, _ := newContext(tt.target)
			assert.Equal(t, tt.want, queryPrefix(c))
		})
	}
}

func TestQueryInt64(t *testing.T) {
	c, _ := newContext("/?n=42&bad=4x")

	n, ok, err := queryInt64(c, "n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok, err = queryInt64(c, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = queryInt64(c, "bad")
	require.Error(t, err)
	httpErr, isHTTP := err.(*echo.HTTPError)
	require.True(t, isHTTP)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestQueryFloat(t *testing.T) {
	c, _ := newContext("/?f=1.5&bad=abc")

	f, ok, err := queryFloat(c, "f")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, _, err = queryFloat(c, "bad")
	assert.Error(t, err)
}

func TestKeyValuesSorted(t *testing.T) {
	got := keyValues(map[string]string{"b": "2", "a": "1"})

	assert.Equal(t, []map[string]string{
		{"Key": "a", "Value": "1"},
		{"Key": "b", "Value": "2"},
	}, got)
	assert.Nil(t, keyValues(nil))
}
