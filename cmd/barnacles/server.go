package barnacles

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/barnacles"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/middleware"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/rawdatalog"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "Store every raddec from the bus in Azure Blob Storage",
	Long: `

	AZURE_ACCOUNT=reelyactive \
	AZURE_ACCOUNT_KEY=... \
	PRINT_ERRORS=true \
	NATS_SERVER=127.0.0.1 \
	STAN_CLUSTER_ID=stan \
	TOPIC=raddec \
	go run main.go barnacles server
	`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		logContext := logrus.WithField("context", "barnacles-azureblobstorage")

		options := sinkOptions()
		logContext.WithFields(logrus.Fields{
			"account":        options.Account,
			"container_name": options.ContainerName,
			"print_errors":   options.PrintErrors,
			"raddec":         options.Raddec,
		}).Info("starting")

		sink := barnacles.NewAzureBlobStorage(logrus.WithField("context", "azure-blob-storage"), options)

		var handler barnacles.Handler = sink
		if viper.GetBool("barnacles.server.stdout") {
			handler = barnacles.NewMultiHandler(sink, barnacles.NewStdoutHandler(os.Stdout, options.Raddec))
		}

		bus, err := connectBus(logrus.WithField("context", "raddec-bus"))
		if err != nil {
			logContext.WithField("error", err).Fatal("connecting to the bus")
		}

		var unsubscribe func() error
		if bus.subscribe != nil {
			unsubscribe, err = bus.subscribe(handler)
			if err != nil {
				logContext.WithField("error", err).Fatal("subscribing to raddecs")
			}
		}

		var srv *http.Server
		listenOn := viper.GetString("barnacles.server.listenOn")
		if listenOn != "" {
			srv = newHTTPServer(listenOn, viper.GetString("barnacles.server.secret"), handler)
			go func() {
				logContext.WithField("listen_on", listenOn).Info("accepting raddecs over http")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logContext.WithField("error", err).Fatal("http server stopped")
				}
			}()
		}

		if unsubscribe == nil && srv == nil {
			logContext.Fatal("nothing to listen on, set a bus or LISTEN_ON")
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		logContext.Info("shutting down")

		if unsubscribe != nil {
			if err := unsubscribe(); err != nil {
				logContext.WithField("error", err).Warn("closing subscription")
			}
		}
		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			srv.Shutdown(ctx)
			cancel()
		}
		if bus.close != nil {
			bus.close()
		}

		sink.Wait()
		logContext.Info("stopped")
	},
}

func newHTTPServer(listenOn string, secret string, handler barnacles.Handler) *http.Server {
	service := rawdatalog.NewService(logrus.WithField("context", "raddec-webhook"), handler)

	c := cors.New(cors.Options{
		OptionsPassthrough: false,
		AllowedOrigins:     []string{"*"},
		AllowedMethods: []string{
			http.MethodOptions,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedHeaders: []string{"*", "x-secret"},
	})

	stdChain := alice.New(
		c.Handler,
		middleware.LogRequest(logrus.WithField("context", "http")),
		middleware.RestrictHandler(secret),
		middleware.EnforceJSONHandler,
	)

	router := mux.NewRouter()
	router.Handle("/raddec", stdChain.ThenFunc(service.Webhook)).Methods(http.MethodPost, http.MethodPut, http.MethodOptions)
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}).Methods(http.MethodGet)

	return &http.Server{
		Handler:      router,
		Addr:         listenOn,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
}

func init() {
	serverCMD.Flags().Bool("stdout", false, "Also print each flattened raddec to stdout")
	viper.BindPFlag("barnacles.server.stdout", serverCMD.Flags().Lookup("stdout"))
	serverCMD.Flags().String("listen-on", "", "Accept raddecs over http on this address, e.g. localhost:8080")
	viper.BindPFlag("barnacles.server.listenOn", serverCMD.Flags().Lookup("listen-on"))
}
