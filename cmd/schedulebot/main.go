package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"poppi/config"
	"poppi/services/chat"
)

func main() {
	config.LoadConfig()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "schedulebot",
	Short: "Book a consultation from the terminal",
	Long: `schedulebot runs the scheduling assistant locally and talks to a running
API server for availability and payment.

Examples:
  schedulebot                              # Start a booking conversation
  schedulebot --name Jane --email j@x.com  # Skip the questions you already answered
  schedulebot availability monday          # List open slots for next Monday
  schedulebot availability 2025-06-02      # List open slots for a date`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "Base URL of the scheduling API (defaults to API_BASE_URL)")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "HTTP timeout for API calls")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().String("name", "", "Your name, if you want to skip that question")
	rootCmd.Flags().String("email", "", "Your email, if you want to skip that question")

	rootCmd.AddCommand(availabilityCmd)
}

func newCollaborator(cmd *cobra.Command) *chat.HTTPCollaborator {
	apiURL, _ := cmd.Flags().GetString("api")
	if apiURL == "" {
		apiURL = config.AppConfig.APIBaseURL
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return chat.NewHTTPCollaborator(apiURL, timeout)
}
