package main

import (
	"os"

	"github.com/spf13/cobra"

	chatcmder "recipe-wizard/cmd/recipe-wizard/chat"
)

func main() {
	root := &cobra.Command{
		Use:           "recipe-wizard",
		Short:         "Chat with a recipe assistant from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(chatcmder.NewChatCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
