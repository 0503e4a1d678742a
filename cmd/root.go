package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelyactive/barnacles-azureblobstorage/cmd/barnacles"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "barnacles-azureblobstorage",
	Short: "Writes raddecs to Azure Blob Storage",
	Long:  `Listens for raddecs on the event bus and stores each one as a blob in Azure Blob Storage`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.AddCommand(barnacles.RootCmd)
}

func initConfig() {
	if configFile == "" {
		return
	}

	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		logrus.WithFields(logrus.Fields{
			"error":  err,
			"config": configFile,
		}).Fatal("reading config file")
	}
}
