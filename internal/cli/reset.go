package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mkadlec/shutterbook/internal/repository"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  shutterbook reset orders    # Delete all orders and reminders
  shutterbook reset all       # Wipe everything: orders, clients, expenses, reminders`,
}

var resetOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Delete all orders and pending reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL orders and reminders. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()

		if err := appInstance.Reminders.CancelAll(ctx); err != nil {
			return err
		}
		if err := appInstance.Store.Delete(ctx, repository.KeyOrders); err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}

		fmt.Println("All orders and reminders have been deleted.")
		fmt.Println("Client totals will be rebuilt on next start.")
		return nil
	},
}

var resetExpensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Delete all expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL expenses. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()

		if err := appInstance.Store.Delete(ctx, repository.KeyExpenses); err != nil {
			return fmt.Errorf("failed to clear expenses: %w", err)
		}

		fmt.Println("All expenses have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: orders, clients, expenses, reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (orders, clients, expenses, reminders). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()

		if err := appInstance.Reminders.CancelAll(ctx); err != nil {
			return err
		}
		for _, key := range []string{repository.KeyOrders, repository.KeyClients, repository.KeyExpenses} {
			if err := appInstance.Store.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to clear %s: %w", key, err)
			}
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetOrdersCmd)
	resetCmd.AddCommand(resetExpensesCmd)
	resetCmd.AddCommand(resetAllCmd)
}
