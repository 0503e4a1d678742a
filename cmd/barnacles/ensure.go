package barnacles

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/pkg/azure"
)

var ensureContainerCMD = &cobra.Command{
	Use:   "ensure-container",
	Short: "Create the raddec container if it does not exist yet",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		containerName := viper.GetString("barnacles.azure.containerName")
		logContext := logrus.WithFields(logrus.Fields{
			"context":        "ensure-container",
			"container_name": containerName,
		})

		client := serviceClient(logContext)
		if err := azure.EnsureContainerExists(context.Background(), client, containerName); err != nil {
			logContext.WithField("error", err).Fatal("creating container")
		}
		logContext.Info("container ready")
	},
}
