package handlers

import (
	"math"
	"net/http"

	"github.com/damacus/media-shelf/internal/utils"
	"github.com/labstack/echo/v4"
)

type FormatHandler struct{}

func NewFormatHandler() *FormatHandler {
	return &FormatHandler{}
}

// Format renders any of bytes, ms, bps, resolution, value/total and name
// query params the way the UI shows them
func (h *FormatHandler) Format(c echo.Context) error {
	out := map[string]interface{}{
		"date": utils.TimestampString(),
	}

	if b, ok, err := queryFloat(c, "bytes"); err != nil {
		return err
	} else if ok {
		decimals, hasDecimals, err := queryInt64(c, "decimals")
		if err != nil {
			return err
		}
		if !hasDecimals {
			decimals = utils.DefaultByteDecimals
		}
		out["bytes"] = utils.FormatBytesPrecision(b, int(decimals))
		out["size_category"] = utils.SizeCategory(byteCount(b))
	}

	if ms, ok, err := queryInt64(c, "ms"); err != nil {
		return err
	} else if ok {
		out["duration"] = utils.FormatDuration(ms)
	}

	if bps, ok, err := queryInt64(c, "bps"); err != nil {
		return err
	} else if ok {
		out["bitrate"] = utils.FormatBitrate(bps)
	}

	if raw := c.QueryParam("resolution"); raw != "" {
		if res, ok := utils.ParseResolution(raw); ok {
			out["resolution"] = map[string]int{"width": res.Width, "height": res.Height}
		}
		out["quality"] = utils.QualityCategory(raw)
	}

	value, hasValue, err := queryFloat(c, "value")
	if err != nil {
		return err
	}
	total, hasTotal, err := queryFloat(c, "total")
	if err != nil {
		return err
	}
	if hasValue || hasTotal {
		out["percentage"] = utils.CalculatePercentage(value, total)
	}

	if name := c.QueryParam("name"); name != "" {
		out["filename"] = utils.SanitizeFilename(name)
	}

	return c.JSON(http.StatusOK, out)
}

// byteCount converts a parsed byte count to int64, saturating instead of wrapping
func byteCount(b float64) int64 {
	switch {
	case math.IsNaN(b) || b <= 0:
		return 0
	case b >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(b)
	}
}
