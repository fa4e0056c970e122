package services

import (
	"context"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"
	"github.com/stretchr/testify/mock"
)

// mockMinioClient implements both MinioClient and MinioAdminClient
type mockMinioClient struct {
	mock.Mock
}

func (m *mockMinioClient) DataUsageInfo(ctx context.Context) (madmin.DataUsageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(madmin.DataUsageInfo), args.Error(1)
}

func (m *mockMinioClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) ([]minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).([]minio.ObjectInfo), args.Error(1)
}

func (m *mockMinioClient) ListObjectsPaginated(ctx context.Context, bucketName string, opts ListObjectsOptions) (ListObjectsResult, error) {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(ListObjectsResult), args.Error(1)
}

func (m *mockMinioClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockMinioClient) GetObjectTagging(ctx context.Context, bucketName, objectName string, opts minio.GetObjectTaggingOptions) (*tags.Tags, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tags.Tags), args.Error(1)
}

type mockMinioFactory struct {
	mock.Mock
}

func (m *mockMinioFactory) NewAdminClient(creds Credentials) (MinioAdminClient, error) {
	args := m.Called(creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(MinioAdminClient), args.Error(1)
}

func (m *mockMinioFactory) NewClient(creds Credentials) (MinioClient, error) {
	args := m.Called(creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(MinioClient), args.Error(1)
}
