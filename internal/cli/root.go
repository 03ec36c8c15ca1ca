package cli

import (
	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "shutterbook",
	Short: "A booking and billing assistant for freelance photographers",
	Long: `Shutterbook keeps track of photo session bookings, clients, payments,
and business expenses, and renders invoices.

By default, running shutterbook without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
