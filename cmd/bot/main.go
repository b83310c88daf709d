package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/severetsunamist/real-estate-crm/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "bot",
		Short: "Telegram bot for the real-estate CRM",
	}

	rootCmd.AddCommand(startCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(); err != nil {
				return err
			}
			cmd.Println("Starting Telegram bot...")
			// Bot implementation will be added later
			return nil
		},
	}
}
