package barnacles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
)

var latestCMD = &cobra.Command{
	Use:   "latest",
	Short: "List the most recently stored raddecs",
	Long: `

	AZURE_ACCOUNT=reelyactive \
	AZURE_ACCOUNT_KEY=... \
	go run main.go barnacles latest --prefix=1600000000 --limit=5
	`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		logContext := logrus.WithField("context", "latest-blobs")
		client := serviceClient(logContext)

		latest, err := azure.LatestBlobs(
			context.Background(),
			client,
			viper.GetString("barnacles.azure.containerName"),
			viper.GetString("barnacles.latest.prefix"),
			viper.GetInt("barnacles.latest.limit"),
		)
		if err != nil {
			logContext.WithField("error", err).Fatal("listing blobs")
		}

		b, _ := json.Marshal(latest)
		fmt.Println(string(b))
	},
}

func init() {
	latestCMD.Flags().String("prefix", "", "Only list blobs starting with this, e.g. a timestamp prefix")
	latestCMD.Flags().Int("limit", 20, "How many blobs to list")
	viper.BindPFlag("barnacles.latest.prefix", latestCMD.Flags().Lookup("prefix"))
	viper.BindPFlag("barnacles.latest.limit", latestCMD.Flags().Lookup("limit"))
}
