package rawdatalog

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"
	"github.com/sirupsen/logrus"
)

func SetupNats(logContext logrus.FieldLogger, natsServer string, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logContext.WithField("error", err).Warn("Disconnected from NATS Server")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logContext.WithField("url", nc.ConnectedUrl()).Info("Reconnected to NATS Server")
		}),
	}

	logContext.Info("Connecting to NATS Server...")
	nc, err := nats.Connect(natsServer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats server %s: %w", natsServer, err)
	}
	return nc, nil
}

func SetupStan(logContext logrus.FieldLogger, natsServer string, clusterID string, clientID string) (stan.Conn, error) {
	logContext = logContext.WithFields(logrus.Fields{
		"cluster_id": clusterID,
		"client_id":  clientID,
	})

	nc, err := SetupNats(logContext, natsServer, "barnacles-azureblobstorage")
	if err != nil {
		return nil, err
	}

	logContext.Info("Connecting to NATS Streaming Server...")
	sc, err := stan.Connect(clusterID, clientID,
		stan.NatsConn(nc),
		stan.SetConnectionLostHandler(func(_ stan.Conn, reason error) {
			logContext.Fatalf("Connection lost, reason: %v", reason)
		}),
		stan.Pings(10, 5),
	)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("can't connect to nats streaming server at %s: %w", nc.Opts.Url, err)
	}

	return sc, nil
}
