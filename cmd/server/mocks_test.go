package main

import (
	"context"
	"io"

	"github.com/damacus/media-shelf/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"
	"github.com/stretchr/testify/mock"
)

// MockMinioClient implements both MinioClient and MinioAdminClient interfaces for testing
type MockMinioClient struct {
	mock.Mock
}

// MinioAdminClient methods

func (m *MockMinioClient) DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.DataUsageInfo), args.Error(1)
}

// MinioClient methods

func (m *MockMinioClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).([]minio.ObjectInfo), args.Error(1)
}

func (m *MockMinioClient) ListObjectsPaginated(ctx context.Context, bucketName string, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *MockMinioClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *MockMinioClient) GetObjectTagging(ctx context.Context, bucketName, objectName string, opts minio.GetObjectTaggingOptions) (*tags.Tags, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tags.Tags), args.Error(1)
}

// MockMinioFactory implements MinioClientFactory for testing
type MockMinioFactory struct {
	mock.Mock
}

func (m *MockMinioFactory) NewAdminClient(creds services.Credentials) (services.MinioAdminClient, error) {
	args := m.Called(creds)
	return args.Get(0).(services.MinioAdminClient), args.Error(1)
}

func (m *MockMinioFactory) NewClient(creds services.Credentials) (services.MinioClient, error) {
	args := m.Called(creds)
	return args.Get(0).(services.MinioClient), args.Error(1)
}

// MockRenderer implements echo.Renderer for testing and records what was rendered
type MockRenderer struct {
	Name string
	Data interface{}
}

func (r *MockRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.Name = name
	r.Data = data
	return nil
}
