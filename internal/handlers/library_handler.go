package handlers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/damacus/media-shelf/internal/models"
	"github.com/damacus/media-shelf/internal/services"
	"github.com/damacus/media-shelf/internal/utils"
	"github.com/labstack/echo/v4"
)

type LibraryHandler struct {
	library *services.MediaLibrary
	root    string
}

// NewLibraryHandler serves library. root is the prefix shown when a request names none.
func NewLibraryHandler(library *services.MediaLibrary, root string) *LibraryHandler {
	return &LibraryHandler{library: library, root: normalizePrefix(root)}
}

func (h *LibraryHandler) prefix(c echo.Context) string {
	if p := queryPrefix(c); p != "" {
		return p
	}
	return h.root
}

// BrowseLibrary renders the media browser for a prefix
func (h *LibraryHandler) BrowseLibrary(c echo.Context) error {
	prefix := h.prefix(c)

	result, err := h.library.Browse(c.Request().Context(), prefix, c.QueryParam("token"))
	if err != nil {
		slog.Error("browse failed", "prefix", prefix, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list media")
	}

	return c.Render(http.StatusOK, "library", map[string]interface{}{
		"BucketName":  h.library.Bucket(),
		"Prefix":      prefix,
		"Items":       result.Items,
		"Folders":     result.Folders,
		"Breadcrumbs": models.Breadcrumbs(prefix),
		"NextToken":   result.NextToken,
		"ExportName":  ExportFilename(h.library.Bucket(), prefix),
	})
}

// GetMediaInfo returns metadata and tags for a media object
func (h *LibraryHandler) GetMediaInfo(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Object key is required")
	}

	obj, err := h.library.Stat(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		slog.Error("media info failed", "key", key, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load media")
	}

	return c.Render(http.StatusOK, "media_info", map[string]interface{}{
		"Item":         obj.Item,
		"ETag":         obj.ETag,
		"LastModified": obj.Item.LastModified.Format("Jan 02, 2006 15:04 MST"),
		"Metadata":     keyValues(obj.Metadata),
		"Tags":         keyValues(obj.Tags),
	})
}

// GetStorageWidget returns usage and category breakdowns for the dashboard
func (h *LibraryHandler) GetStorageWidget(c echo.Context) error {
	ctx := c.Request().Context()
	prefix := h.prefix(c)

	usage, err := h.library.Usage(ctx)
	if err != nil {
		slog.Warn("storage widget: usage unavailable", "error", err)
		return c.Render(http.StatusOK, "storage_widget", map[string]interface{}{
			"Error": true,
		})
	}

	items, err := h.library.Walk(ctx, prefix)
	if err != nil {
		slog.Warn("storage widget: listing failed", "prefix", prefix, "error", err)
		return c.Render(http.StatusOK, "storage_widget", map[string]interface{}{
			"Error": true,
		})
	}

	return c.Render(http.StatusOK, "storage_widget", map[string]interface{}{
		"Usage": usage,
		"Stats": models.NewLibraryStats(items),
	})
}

var exportHeader = []string{
	"key", "size_bytes", "size", "size_category",
	"resolution", "quality", "duration_ms", "duration",
	"bitrate", "bitrate_label", "last_modified",
}

// ExportCSV streams a CSV report of every media object below a prefix
func (h *LibraryHandler) ExportCSV(c echo.Context) error {
	prefix := h.prefix(c)

	items, err := h.library.Walk(c.Request().Context(), prefix)
	if err != nil {
		slog.Error("export failed", "prefix", prefix, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list media")
	}

	filename := ExportFilename(h.library.Bucket(), prefix)
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{
			item.Key,
			strconv.FormatInt(item.Size, 10),
			item.FormattedSize,
			item.SizeCategory,
			item.Resolution,
			item.Quality,
			strconv.FormatInt(item.DurationMs, 10),
			item.FormattedDuration,
			strconv.FormatInt(item.Bitrate, 10),
			item.FormattedBitrate,
			item.LastModified.UTC().Format(time.RFC3339),
		}
		for i := range row {
			row[i] = csvCell(row[i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// csvCell stops spreadsheets from evaluating a cell as a formula
func csvCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

// ExportFilename names a CSV export, e.g. "media_films-media-2024-03-10.csv"
func ExportFilename(bucket, prefix string) string {
	name := bucket
	if p := strings.Trim(prefix, "/"); p != "" {
		name += " " + p
	}
	return utils.SanitizeFilename(name) + "-media-" + utils.TimestampString() + ".csv"
}

func keyValues(m map[string]string) []map[string]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []map[string]string
	for _, k := range keys {
		out = append(out, map[string]string{"Key": k, "Value": m[k]})
	}
	return out
}
