package barnacles

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
)

var shareCMD = &cobra.Command{
	Use:   "share-blob <blob name>",
	Short: "Create a read only link to a stored raddec",
	Long: `

	AZURE_ACCOUNT=reelyactive \
	AZURE_ACCOUNT_KEY=... \
	go run main.go barnacles share-blob 1600000000000-fee150bada55-3
	`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		logContext := logrus.WithField("context", "share-blob")
		options := sinkOptions()
		expireIn := time.Now().UTC().Add(viper.GetDuration("barnacles.share.expireIn"))

		link, err := azure.CreateBlobLink(options.Account, options.AccountKey, options.ContainerName, args[0], expireIn)
		if err != nil {
			logContext.WithField("error", err).Fatal("creating link")
		}
		fmt.Println(link)
	},
}

func init() {
	shareCMD.Flags().Duration("expire-in", 48*time.Hour, "How long the link stays valid")
	viper.BindPFlag("barnacles.share.expireIn", shareCMD.Flags().Lookup("expire-in"))
}
