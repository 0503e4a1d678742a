package barnacles

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/raddec"
	"github.com/reelyactive/barnacles-azureblobstorage/pkg/rawdatalog"
)

var publishCMD = &cobra.Command{
	Use:   "publish [file]",
	Short: "Publish raddecs from a json file (or stdin) onto the bus",
	Long: `

	echo '{"transmitterId":"fee150bada55","transmitterIdType":3,"timestamp":1600000000000}' | \
	NATS_SERVER=127.0.0.1 \
	STAN_CLUSTER_ID=stan \
	go run main.go barnacles publish
	`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		logContext := logrus.WithField("context", "raddec-publisher")
		topic := viper.GetString("barnacles.topic")

		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				logContext.WithField("error", err).Fatal("opening raddec file")
			}
			defer f.Close()
			in = f
		}

		data, err := ioutil.ReadAll(in)
		if err != nil {
			logContext.WithField("error", err).Fatal("reading raddecs")
		}

		raddecs, err := raddec.DecodeMany(data)
		if err != nil {
			logContext.WithField("error", err).Fatal("decoding raddecs")
		}

		var publisher rawdatalog.Publisher
		if viper.GetBool("barnacles.publish.dryRun") {
			publisher = rawdatalog.NewWriterPublisher(os.Stdout)
		} else {
			bus, err := connectBus(logrus.WithField("context", "raddec-bus"))
			if err != nil {
				logContext.WithField("error", err).Fatal("connecting to the bus")
			}
			if bus.publisher == nil {
				logContext.Fatal("no bus configured to publish on")
			}
			defer bus.close()
			publisher = bus.publisher
		}

		for _, r := range raddecs {
			if err := publisher.Publish(topic, r); err != nil {
				logContext.WithFields(logrus.Fields{
					"error":          err,
					"transmitter_id": r.TransmitterID,
				}).Fatal("publishing raddec")
			}
		}

		logContext.WithFields(logrus.Fields{
			"topic":     topic,
			"published": len(raddecs),
		}).Info("done")
	},
}

func init() {
	publishCMD.Flags().Bool("dry-run", false, "Print the raddecs instead of publishing them")
	viper.BindPFlag("barnacles.publish.dryRun", publishCMD.Flags().Lookup("dry-run"))
}
