package rawdatalog

import (
	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"
	"github.com/sirupsen/logrus"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/barnacles"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
)

// HandleMessage decodes one message body, a raddec or an array of raddecs,
// and passes each to the handler. Undecodable messages are logged and dropped.
func HandleMessage(logContext logrus.FieldLogger, data []byte, handler barnacles.Handler) int {
	raddecs, err := raddec.DecodeMany(data)
	if err != nil {
		logContext.WithFields(logrus.Fields{
			"error": err,
			"size":  len(data),
		}).Warn("dropping message")
		return 0
	}

	for _, r := range raddecs {
		handler.HandleRaddec(r)
	}
	return len(raddecs)
}

// SubscribeStan subscribes to the topic on NATS Streaming.
// A durable name lets a restarted sink carry on where it stopped.
func SubscribeStan(logContext logrus.FieldLogger, sc stan.Conn, topic string, durableName string, handler barnacles.Handler) (stan.Subscription, error) {
	logContext = logContext.WithField("topic", topic)

	opts := []stan.SubscriptionOption{}
	if durableName != "" {
		opts = append(opts, stan.DurableName(durableName))
	}

	return sc.Subscribe(topic, func(msg *stan.Msg) {
		HandleMessage(logContext, msg.Data, handler)
	}, opts...)
}

func SubscribeNats(logContext logrus.FieldLogger, nc *nats.Conn, subject string, handler barnacles.Handler) (*nats.Subscription, error) {
	logContext = logContext.WithField("subject", subject)

	return nc.Subscribe(subject, func(msg *nats.Msg) {
		HandleMessage(logContext, msg.Data, handler)
	})
}
