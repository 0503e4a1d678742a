package barnacles

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/barnacles"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/rawdatalog"
)

const (
	busStan = "stan"
	busNats = "nats"
	busNone = "none"
)

func setupViper() {
	viper.SetDefault("barnacles.logLevel", "info")
	viper.SetDefault("barnacles.azure.containerName", barnacles.DefaultContainerName)
	viper.SetDefault("barnacles.azure.printErrors", false)
	viper.SetDefault("barnacles.raddec.includePackets", false)
	viper.SetDefault("barnacles.bus", busStan)
	viper.SetDefault("barnacles.topic", "raddec")
	viper.SetDefault("barnacles.log.nats.server", "nats://127.0.0.1:4222")
	viper.SetDefault("barnacles.log.stan.clusterID", "stan")
	viper.SetDefault("barnacles.log.stan.durableName", "barnacles-azureblobstorage")
	viper.SetDefault("barnacles.server.listenOn", "")

	viper.BindEnv("barnacles.logLevel", "LOG_LEVEL")
	viper.BindEnv("barnacles.azure.account", "AZURE_ACCOUNT")
	viper.BindEnv("barnacles.azure.accountKey", "AZURE_ACCOUNT_KEY")
	viper.BindEnv("barnacles.azure.containerName", "CONTAINER_NAME")
	viper.BindEnv("barnacles.azure.printErrors", "PRINT_ERRORS")
	viper.BindEnv("barnacles.raddec.includePackets", "INCLUDE_PACKETS")
	viper.BindEnv("barnacles.bus", "BUS")
	viper.BindEnv("barnacles.topic", "TOPIC")
	viper.BindEnv("barnacles.log.nats.server", "NATS_SERVER")
	viper.BindEnv("barnacles.log.stan.clusterID", "STAN_CLUSTER_ID")
	viper.BindEnv("barnacles.log.stan.clientID", "STAN_CLIENT_ID")
	viper.BindEnv("barnacles.log.stan.durableName", "STAN_DURABLE_NAME")
	viper.BindEnv("barnacles.server.listenOn", "LISTEN_ON")
	viper.BindEnv("barnacles.server.secret", "WEBHOOK_SECRET")
}

func setupLogging() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(viper.GetString("barnacles.logLevel"))
	if err != nil {
		logrus.WithField("error", err).Warn("unknown log level, keeping info")
		return
	}
	logrus.SetLevel(level)
}

func sinkOptions() barnacles.Options {
	return barnacles.Options{
		Account:       viper.GetString("barnacles.azure.account"),
		AccountKey:    viper.GetString("barnacles.azure.accountKey"),
		ContainerName: viper.GetString("barnacles.azure.containerName"),
		PrintErrors:   viper.GetBool("barnacles.azure.printErrors"),
		Raddec: raddec.FlattenOptions{
			IncludePackets: viper.GetBool("barnacles.raddec.includePackets"),
		},
	}
}

func serviceClient(logContext logrus.FieldLogger) *service.Client {
	options := sinkOptions()
	client, err := azure.NewServiceClient(options.Account, options.AccountKey)
	if err != nil {
		logContext.WithField("error", err).Fatal("creating blob service client")
	}
	return client
}

// stanClientID must be unique per connection, so an unset id gets a random one.
func stanClientID() string {
	clientID := viper.GetString("barnacles.log.stan.clientID")
	if clientID != "" {
		return clientID
	}
	return fmt.Sprintf("barnacles-%s", uuid.New().String())
}

type busConnection struct {
	publisher rawdatalog.Publisher
	subscribe func(handler barnacles.Handler) (func() error, error)
	close     func()
}

func connectBus(logContext logrus.FieldLogger) (busConnection, error) {
	natsServer := viper.GetString("barnacles.log.nats.server")
	topic := viper.GetString("barnacles.topic")

	switch kind := viper.GetString("barnacles.bus"); kind {
	case busStan:
		clusterID := viper.GetString("barnacles.log.stan.clusterID")
		durableName := viper.GetString("barnacles.log.stan.durableName")
		sc, err := rawdatalog.SetupStan(logContext, natsServer, clusterID, stanClientID())
		if err != nil {
			return busConnection{}, err
		}
		return busConnection{
			publisher: rawdatalog.NewStanPublisher(sc),
			subscribe: func(handler barnacles.Handler) (func() error, error) {
				sub, err := rawdatalog.SubscribeStan(logContext, sc, topic, durableName, handler)
				if err != nil {
					return nil, err
				}
				// Close keeps the durable position, Unsubscribe would drop it.
				return sub.Close, nil
			},
			close: func() {
				sc.Close()
				sc.NatsConn().Close()
			},
		}, nil
	case busNats:
		nc, err := rawdatalog.SetupNats(logContext, natsServer, "barnacles-azureblobstorage")
		if err != nil {
			return busConnection{}, err
		}
		return busConnection{
			publisher: rawdatalog.NewNatsPublisher(nc),
			subscribe: func(handler barnacles.Handler) (func() error, error) {
				sub, err := rawdatalog.SubscribeNats(logContext, nc, topic, handler)
				if err != nil {
					return nil, err
				}
				return sub.Unsubscribe, nil
			},
			close: nc.Close,
		}, nil
	case busNone:
		return busConnection{}, nil
	default:
		return busConnection{}, fmt.Errorf("unsupported bus: %s", kind)
	}
}
