package main

import "github.com/reelyactive/barnacles-azureblobstorage/cmd"

func main() {
	cmd.Execute()
}
