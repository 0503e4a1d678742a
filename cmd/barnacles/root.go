package barnacles

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "barnacles",
	Short: "Raddec to Azure Blob Storage",
	Long:  ``,
}

func init() {
	setupViper()

	RootCmd.AddCommand(serverCMD)
	RootCmd.AddCommand(publishCMD)
	RootCmd.AddCommand(shareCMD)
	RootCmd.AddCommand(latestCMD)
	RootCmd.AddCommand(ensureContainerCMD)
}
