package services

import (
	"context"
	"strings"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/tags"
)

// DefaultPageSize is the default number of objects to return per page
const DefaultPageSize = 100

// Credentials represents the MinIO connection details
type Credentials struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	// Secure overrides the TLS guess made from Endpoint
	Secure *bool
}

// ListObjectsOptions extends minio.ListObjectsOptions with pagination
type ListObjectsOptions struct {
	Prefix            string
	Recursive         bool
	WithMetadata      bool
	MaxKeys           int
	ContinuationToken string
}

// ListObjectsResult contains paginated results from ListObjectsPaginated
type ListObjectsResult struct {
	Objects               []minio.ObjectInfo
	IsTruncated           bool
	NextContinuationToken string
}

// MinioAdminClient is an interface for the madmin methods we use
type MinioAdminClient interface {
	DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error)
}

// MinioClient is an interface for the standard S3 methods we use
type MinioClient interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error)
	ListObjectsPaginated(ctx context.Context, bucketName string, opts ListObjectsOptions) (ListObjectsResult, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObjectTagging(ctx context.Context, bucketName, objectName string, opts minio.GetObjectTaggingOptions) (*tags.Tags, error)
}

// MinioClientFactory creates authenticated clients
type MinioClientFactory interface {
	NewAdminClient(creds Credentials) (MinioAdminClient, error)
	NewClient(creds Credentials) (MinioClient, error)
}

// WrappedMinioClient wraps minio.Client to implement our interface
type WrappedMinioClient struct {
	client *minio.Client
}

func (c *WrappedMinioClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error) {
	var objects []minio.ObjectInfo
	for obj := range c.client.ListObjects(ctx, bucketName, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (c *WrappedMinioClient) ListObjectsPaginated(ctx context.Context, bucketName string, opts ListObjectsOptions) (ListObjectsResult, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultPageSize
	}

	minioOpts := minio.ListObjectsOptions{
		Prefix:       opts.Prefix,
		Recursive:    opts.Recursive,
		WithMetadata: opts.WithMetadata,
	}

	// MinIO paginates by marker, so the token is the last key seen
	if opts.ContinuationToken != "" {
		minioOpts.StartAfter = opts.ContinuationToken
	}

	// Cancel the listing goroutine once the page is full
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return collectPage(c.client.ListObjects(ctx, bucketName, minioOpts), maxKeys)
}

// collectPage reads up to maxKeys objects. One extra object is read to
// decide truncation, so a listing of exactly maxKeys has no next page.
func collectPage(objects <-chan minio.ObjectInfo, maxKeys int) (ListObjectsResult, error) {
	var result ListObjectsResult
	for obj := range objects {
		if obj.Err != nil {
			return ListObjectsResult{}, obj.Err
		}
		if len(result.Objects) >= maxKeys {
			result.IsTruncated = true
			result.NextContinuationToken = result.Objects[len(result.Objects)-1].Key
			break
		}
		result.Objects = append(result.Objects, obj)
	}
	return result, nil
}

func (c *WrappedMinioClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return c.client.StatObject(ctx, bucketName, objectName, opts)
}

func (c *WrappedMinioClient) GetObjectTagging(ctx context.Context, bucketName, objectName string, opts minio.GetObjectTaggingOptions) (*tags.Tags, error) {
	return c.client.GetObjectTagging(ctx, bucketName, objectName, opts)
}

// RealMinioFactory is the production implementation
type RealMinioFactory struct{}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, ...) but not domains like minio.example.com
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}

func (creds Credentials) secure() bool {
	if creds.Secure != nil {
		return *creds.Secure
	}
	return shouldUseSSL(creds.Endpoint)
}

func (f *RealMinioFactory) NewAdminClient(creds Credentials) (MinioAdminClient, error) {
	return madmin.NewWithOptions(creds.Endpoint, &madmin.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, creds.SessionToken),
		Secure: creds.secure(),
	})
}

func (f *RealMinioFactory) NewClient(creds Credentials) (MinioClient, error) {
	client, err := minio.New(creds.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, creds.SessionToken),
		Secure: creds.secure(),
	})
	if err != nil {
		return nil, err
	}
	return &WrappedMinioClient{client: client}, nil
}
