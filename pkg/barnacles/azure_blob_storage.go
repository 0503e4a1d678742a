package barnacles

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

const (
	DefaultContainerName = "raddec"
	blobNameSeparator    = "-"
)

type Options struct {
	Account       string
	AccountKey    string
	ContainerName string
	PrintErrors   bool
	Raddec        raddec.FlattenOptions
	// Client replaces the client built from Account and AccountKey.
	Client azure.BlobClient
}

// AzureBlobStorage stores each raddec it is handed as its own blob.
type AzureBlobStorage struct {
	logContext    logrus.FieldLogger
	containerName string
	raddecOptions raddec.FlattenOptions
	writer        *azure.BestEffortWriter
}

func NewAzureBlobStorage(logContext logrus.FieldLogger, options Options) *AzureBlobStorage {
	if logContext == nil {
		logContext = logrus.StandardLogger()
	}

	containerName := options.ContainerName
	if containerName == "" {
		containerName = DefaultContainerName
	}

	client := options.Client
	if client == nil {
		client = azure.NewBlobClientFromAccount(options.Account, options.AccountKey)
	}

	return &AzureBlobStorage{
		logContext:    logContext,
		containerName: containerName,
		raddecOptions: options.Raddec,
		writer:        azure.NewBestEffortWriter(logContext, client, options.PrintErrors),
	}
}

// BlobName is timestamp-transmitterId-transmitterIdType.
// Two raddecs of one transmitter with the same timestamp share a name, the later upload wins.
func BlobName(r *raddec.Raddec) string {
	return strconv.FormatInt(r.Timestamp, 10) + blobNameSeparator +
		r.TransmitterID + blobNameSeparator +
		strconv.Itoa(int(r.TransmitterIDType))
}

func (s *AzureBlobStorage) ContainerName() string {
	return s.containerName
}

// HandleRaddec starts the upload of the flattened raddec and returns.
// The outcome is never reported to the caller.
func (s *AzureBlobStorage) HandleRaddec(r *raddec.Raddec) {
	blobName := BlobName(r)

	blobContent, err := json.Marshal(r.ToFlattened(s.raddecOptions))
	if err != nil {
		s.writer.ReportError(s.containerName, blobName, fmt.Errorf("failed to serialise raddec: %w", err))
		return
	}

	s.writer.Write(s.containerName, blobName, blobContent)
}

// Wait blocks until the uploads started so far are done.
func (s *AzureBlobStorage) Wait() {
	s.writer.Wait()
}
