package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type BlobClient struct {
	mock.Mock
}

func (m *BlobClient) UploadBlob(ctx context.Context, containerName string, blobName string, content []byte) error {
	args := m.Called(ctx, containerName, blobName, content)
	return args.Error(0)
}
