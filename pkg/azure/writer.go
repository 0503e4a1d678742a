package azure

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrorMessage tags every logged upload failure.
const ErrorMessage = "barnacles-azureblobstorage error"

// BestEffortWriter uploads in the background and never reports back.
// Failures are logged when printErrors is set and dropped otherwise.
type BestEffortWriter struct {
	logContext  logrus.FieldLogger
	client      BlobClient
	printErrors bool
	inFlight    sync.WaitGroup
}

func NewBestEffortWriter(logContext logrus.FieldLogger, client BlobClient, printErrors bool) *BestEffortWriter {
	return &BestEffortWriter{
		logContext:  logContext,
		client:      client,
		printErrors: printErrors,
	}
}

// Write starts the upload and returns straight away.
func (w *BestEffortWriter) Write(containerName string, blobName string, content []byte) {
	w.inFlight.Add(1)
	go func() {
		defer w.inFlight.Done()
		if err := w.upload(containerName, blobName, content); err != nil {
			w.ReportError(containerName, blobName, err)
		}
	}()
}

// ReportError logs a failed write, if errors are to be printed at all.
func (w *BestEffortWriter) ReportError(containerName string, blobName string, err error) {
	if err == nil || !w.printErrors {
		return
	}
	w.logContext.WithFields(logrus.Fields{
		"error":     err,
		"container": containerName,
		"blob":      blobName,
	}).Error(ErrorMessage)
}

// Wait blocks until every upload started so far has finished.
func (w *BestEffortWriter) Wait() {
	w.inFlight.Wait()
}

func (w *BestEffortWriter) upload(containerName string, blobName string, content []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("upload panicked: %v", r)
		}
	}()
	return w.client.UploadBlob(context.Background(), containerName, blobName, content)
}
