package rawdatalog

import (
	"io/ioutil"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/barnacles"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/utils"
)

const maxPayloadBytes = 1 << 20

type service struct {
	logContext logrus.FieldLogger
	handler    barnacles.Handler
}

// NewService accepts raddecs over http, for sources that cannot reach the bus.
func NewService(logContext logrus.FieldLogger, handler barnacles.Handler) *service {
	return &service{
		logContext: logContext,
		handler:    handler,
	}
}

func (s *service) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		s.logContext.WithFields(logrus.Fields{
			"error":   err,
			"context": "reading payload",
		}).Error("webhook")
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read payload")
		return
	}

	raddecs, err := raddec.DecodeMany(body)
	if err != nil {
		s.logContext.WithFields(logrus.Fields{
			"error":   err,
			"context": "incoming payload",
		}).Error("webhook")
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse payload")
		return
	}

	for _, rd := range raddecs {
		s.handler.HandleRaddec(rd)
	}

	utils.RespondNoContent(w, http.StatusNoContent)
}
