package main

import (
	"os"

	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/cmd"
)

func main() {
	cli.InitColor()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
