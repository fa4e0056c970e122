package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/damacus/media-shelf/internal/models"
	"github.com/damacus/media-shelf/internal/utils"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
)

// Metadata keys read from object user metadata or tags
const (
	MetaResolution = "resolution"
	MetaDurationMs = "duration-ms"
	MetaBitrate    = "bitrate"
)

// ErrNotFound is returned by Stat when the object does not exist
var ErrNotFound = errors.New("media not found")

// BrowseResult is one page of a prefix listing
type BrowseResult struct {
	Items     []models.MediaItem
	Folders   []models.FolderInfo
	NextToken string
}

// MediaObject is a single object with its metadata and tags
type MediaObject struct {
	Item     models.MediaItem
	ETag     string
	Metadata map[string]string
	Tags     map[string]string
}

// Usage is the storage footprint of the library bucket
type Usage struct {
	BucketSize    uint64
	TotalCapacity uint64
	ObjectsSize   uint64
	BucketsCount  uint64
}

// MediaLibrary reads a media bucket through a MinIO client factory
type MediaLibrary struct {
	factory  MinioClientFactory
	creds    Credentials
	bucket   string
	pageSize int
}

// NewMediaLibrary creates a library over bucket
func NewMediaLibrary(factory MinioClientFactory, creds Credentials, bucket string, pageSize int) *MediaLibrary {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &MediaLibrary{
		factory:  factory,
		creds:    creds,
		bucket:   bucket,
		pageSize: pageSize,
	}
}

// Bucket returns the bucket name the library reads from
func (l *MediaLibrary) Bucket() string {
	return l.bucket
}

// Browse lists one page of media and folders directly under prefix
func (l *MediaLibrary) Browse(ctx context.Context, prefix, token string) (BrowseResult, error) {
	client, err := l.factory.NewClient(l.creds)
	if err != nil {
		return BrowseResult{}, fmt.Errorf("connecting to minio: %w", err)
	}

	page, err := client.ListObjectsPaginated(ctx, l.bucket, ListObjectsOptions{
		Prefix:            prefix,
		WithMetadata:      true,
		MaxKeys:           l.pageSize,
		ContinuationToken: token,
	})
	if err != nil {
		return BrowseResult{}, fmt.Errorf("listing %s/%s: %w", l.bucket, prefix, err)
	}

	result := BrowseResult{NextToken: page.NextContinuationToken}
	seenFolders := make(map[string]bool)

	for _, obj := range page.Objects {
		if strings.HasSuffix(obj.Key, "/") {
			name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), "/")
			if name != "" && !seenFolders[name] {
				seenFolders[name] = true
				result.Folders = append(result.Folders, models.FolderInfo{Name: name, Prefix: obj.Key})
			}
			continue
		}
		result.Items = append(result.Items, itemFromObject(obj, prefix, nil))
	}
	return result, nil
}

// Walk lists every media object below prefix
func (l *MediaLibrary) Walk(ctx context.Context, prefix string) ([]models.MediaItem, error) {
	client, err := l.factory.NewClient(l.creds)
	if err != nil {
		return nil, fmt.Errorf("connecting to minio: %w", err)
	}

	objects, err := client.ListObjects(ctx, l.bucket, minio.ListObjectsOptions{
		Prefix:       prefix,
		Recursive:    true,
		WithMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s/%s: %w", l.bucket, prefix, err)
	}

	items := make([]models.MediaItem, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		items = append(items, itemFromObject(obj, prefix, nil))
	}
	return items, nil
}

// Stat fetches one object with its metadata and tags
func (l *MediaLibrary) Stat(ctx context.Context, key string) (MediaObject, error) {
	client, err := l.factory.NewClient(l.creds)
	if err != nil {
		return MediaObject{}, fmt.Errorf("connecting to minio: %w", err)
	}

	info, err := client.StatObject(ctx, l.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return MediaObject{}, fmt.Errorf("stat %s/%s: %w", l.bucket, key, ErrNotFound)
		}
		return MediaObject{}, fmt.Errorf("stat %s/%s: %w", l.bucket, key, err)
	}

	// Tags are optional, a failure here only hides them
	var tagMap map[string]string
	if objTags, err := client.GetObjectTagging(ctx, l.bucket, key, minio.GetObjectTaggingOptions{}); err == nil && objTags != nil {
		tagMap = objTags.ToMap()
	}

	return MediaObject{
		Item:     itemFromObject(info, "", tagMap),
		ETag:     info.ETag,
		Metadata: normalizeMeta(info.UserMetadata),
		Tags:     tagMap,
	}, nil
}

// Usage reports how much space the library bucket takes
func (l *MediaLibrary) Usage(ctx context.Context) (Usage, error) {
	mdm, err := l.factory.NewAdminClient(l.creds)
	if err != nil {
		return Usage{}, fmt.Errorf("connecting to minio admin: %w", err)
	}

	info, err := mdm.DataUsageInfo(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("fetching data usage: %w", err)
	}
	return usageFrom(info, l.bucket), nil
}

func usageFrom(info madmin.DataUsageInfo, bucket string) Usage {
	u := Usage{
		TotalCapacity: info.TotalCapacity,
		ObjectsSize:   info.ObjectsTotalSize,
		BucketsCount:  info.BucketsCount,
	}
	if info.BucketSizes != nil {
		u.BucketSize = info.BucketSizes[bucket]
	}
	return u
}

func itemFromObject(obj minio.ObjectInfo, prefix string, tagMap map[string]string) models.MediaItem {
	meta := ParseMediaMeta(obj.Key, obj.UserMetadata, tagMap)
	return models.NewMediaItem(obj.Key, prefix, obj.Size, obj.ContentType, obj.LastModified, meta)
}

// ParseMediaMeta reads media metadata from user metadata, then tags.
// When neither carries a resolution it is taken from the object key.
func ParseMediaMeta(key string, userMeta, tagMap map[string]string) models.MediaMeta {
	userMeta = normalizeMeta(userMeta)
	lookup := func(name string) string {
		if v := strings.TrimSpace(userMeta[name]); v != "" {
			return v
		}
		for k, v := range tagMap {
			if strings.EqualFold(k, name) {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	meta := models.MediaMeta{
		Resolution: lookup(MetaResolution),
		DurationMs: parseCount(lookup(MetaDurationMs)),
		Bitrate:    parseCount(lookup(MetaBitrate)),
	}
	if res, ok := utils.ParseResolution(meta.Resolution); ok {
		meta.Resolution = res.String()
	} else if res, ok := utils.ParseResolution(key); ok {
		meta.Resolution = res.String()
	} else {
		meta.Resolution = ""
	}
	return meta
}

// normalizeMeta lower-cases keys and drops the x-amz-meta- prefix that
// listings keep but StatObject strips
func normalizeMeta(userMeta map[string]string) map[string]string {
	out := make(map[string]string, len(userMeta))
	for k, v := range userMeta {
		k = strings.ToLower(k)
		k = strings.TrimPrefix(k, "x-amz-meta-")
		out[k] = v
	}
	return out
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return false
	}
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}
