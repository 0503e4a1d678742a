package azure

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
)

const latestLimit = 20

// ServiceURL is the blob endpoint of the given storage account.
func ServiceURL(accountName string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net", accountName)
}

// NewServiceClient builds a blob service client authenticated with the account's shared key.
func NewServiceClient(accountName string, accountKey string) (*service.Client, error) {
	credential, err := service.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := service.NewClientWithSharedKeyCredential(ServiceURL(accountName), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob service client: %w", err)
	}
	return client, nil
}

// CreateBlobLink returns a read only https link to a single blob, valid until expireIn.
func CreateBlobLink(accountName string, accountKey string, containerName string, blobName string, expireIn time.Time) (string, error) {
	credential, err := service.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return "", err
	}

	sasQueryParams, err := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    expireIn,
		ContainerName: containerName,
		BlobName:      blobName,
		Permissions:   (&sas.BlobPermissions{Read: true}).String(),
	}.SignWithSharedKey(credential)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s?%s",
		ServiceURL(accountName), containerName, url.PathEscape(blobName), sasQueryParams.Encode()), nil
}

// LatestBlobs lists the blob names in the container and returns the last ones,
// newest first. Blob names start with the raddec timestamp so name order is time order.
func LatestBlobs(ctx context.Context, client *service.Client, containerName string, prefix string, limit int) (ListResponse, error) {
	if limit <= 0 {
		limit = latestLimit
	}

	options := &container.ListBlobsFlatOptions{}
	if prefix != "" {
		options.Prefix = to.Ptr(prefix)
	}

	found := make([]string, 0)
	pager := client.NewContainerClient(containerName).NewListBlobsFlatPager(options)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return ListResponse{}, err
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			found = append(found, *item.Name)
		}
	}

	sort.Strings(found)
	size := len(found)
	if size < limit {
		limit = size
	}
	latest := append([]string(nil), found[size-limit:]...)
	sort.Sort(sort.Reverse(sort.StringSlice(latest)))

	return ListResponse{
		ContainerName: containerName,
		Prefix:        prefix,
		URL:           client.URL(),
		Blobs:         latest,
	}, nil
}

// EnsureContainerExists creates the container with default settings.
// If the container already exists it returns nil.
func EnsureContainerExists(ctx context.Context, client *service.Client, containerName string) error {
	if _, err := client.NewContainerClient(containerName).Create(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}
