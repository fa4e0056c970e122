// Package models contains data structures used across handlers
package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/damacus/media-shelf/internal/utils"
)

// MediaMeta is the technical metadata stored alongside a media object.
// Zero values mean unknown.
type MediaMeta struct {
	Resolution string
	DurationMs int64
	Bitrate    int64
}

// MediaItem represents a media object with display metadata
type MediaItem struct {
	Key               string
	DisplayName       string
	Size              int64
	FormattedSize     string
	SizeCategory      string
	Resolution        string
	Quality           string
	DurationMs        int64
	FormattedDuration string
	Bitrate           int64
	FormattedBitrate  string
	LastModified      time.Time
	ContentType       string
	IsVideo           bool
	IsAudio           bool
}

// FolderInfo represents a folder (common prefix)
type FolderInfo struct {
	Name   string
	Prefix string
}

// Breadcrumb for navigation
type Breadcrumb struct {
	Name string
	Path string
}

// NewMediaItem builds the display record for one object under prefix
func NewMediaItem(key, prefix string, size int64, contentType string, lastModified time.Time, meta MediaMeta) MediaItem {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentTypeFromExt(key)
	}

	item := MediaItem{
		Key:           key,
		DisplayName:   strings.TrimPrefix(key, prefix),
		Size:          size,
		FormattedSize: utils.FormatFileSize(size),
		SizeCategory:  utils.SizeCategory(size),
		Resolution:    meta.Resolution,
		Quality:       utils.QualityCategory(meta.Resolution),
		DurationMs:    meta.DurationMs,
		Bitrate:       meta.Bitrate,
		LastModified:  lastModified,
		ContentType:   contentType,
		IsVideo:       strings.HasPrefix(contentType, "video/"),
		IsAudio:       strings.HasPrefix(contentType, "audio/"),
	}
	if meta.DurationMs > 0 {
		item.FormattedDuration = utils.FormatDuration(meta.DurationMs)
	}
	if meta.Bitrate > 0 {
		item.FormattedBitrate = utils.FormatBitrate(meta.Bitrate)
	}
	return item
}

// Breadcrumbs splits a prefix like "films/2024/" into navigable parts
func Breadcrumbs(prefix string) []Breadcrumb {
	var crumbs []Breadcrumb
	path := ""
	for _, part := range strings.Split(strings.TrimSuffix(prefix, "/"), "/") {
		if part == "" {
			continue
		}
		path += part + "/"
		crumbs = append(crumbs, Breadcrumb{Name: part, Path: path})
	}
	return crumbs
}

var mediaTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".ts":   "video/mp2t",
	".m2ts": "video/mp2t",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".srt":  "application/x-subrip",
	".vtt":  "text/vtt",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".nfo":  "text/plain",
}

// ContentTypeFromExt guesses a content type from the file extension
func ContentTypeFromExt(filename string) string {
	if t, ok := mediaTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	return "application/octet-stream"
}
