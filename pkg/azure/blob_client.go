package azure

import (
	"bytes"
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
)

// BlobClient writes a whole blob, replacing whatever was stored under that name.
// Implementations must be safe for concurrent use.
type BlobClient interface {
	UploadBlob(ctx context.Context, containerName string, blobName string, content []byte) error
}

type serviceBlobClient struct {
	client *service.Client
}

// NewBlobClient wraps an already built service client, which lets several sinks share it.
func NewBlobClient(client *service.Client) BlobClient {
	return &serviceBlobClient{
		client: client,
	}
}

// NewBlobClientFromAccount never fails. Bad account settings show up as an
// error on every upload instead.
func NewBlobClientFromAccount(accountName string, accountKey string) BlobClient {
	client, err := NewServiceClient(accountName, accountKey)
	if err != nil {
		return &brokenBlobClient{err: err}
	}
	return NewBlobClient(client)
}

func (c *serviceBlobClient) UploadBlob(ctx context.Context, containerName string, blobName string, content []byte) error {
	containerClient := c.client.NewContainerClient(containerName)
	blockBlobClient := containerClient.NewBlockBlobClient(blobName)
	_, err := blockBlobClient.Upload(ctx, streaming.NopCloser(bytes.NewReader(content)), nil)
	return err
}

type brokenBlobClient struct {
	err error
}

func (c *brokenBlobClient) UploadBlob(ctx context.Context, containerName string, blobName string, content []byte) error {
	return c.err
}
