package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// queryPrefix returns the prefix query param, normalized to end in "/"
func queryPrefix(c echo.Context) string {
	return normalizePrefix(c.QueryParam("prefix"))
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimLeft(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// queryInt64 parses an optional integer query param.
// ok is false when the param is absent.
func queryInt64(c echo.Context, name string) (n int64, ok bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, true, nil
}

// queryFloat parses an optional numeric query param.
// ok is false when the param is absent.
func queryFloat(c echo.Context, name string) (f float64, ok bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, nil
	}
	f, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return f, true, nil
}
