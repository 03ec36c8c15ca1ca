package cli

import (
	"context"
	"fmt"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and remove clients, and show a client's order history.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := appInstance.Ledger.Clients()

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-10s %-30s %-8s %-15s %-15s\n", "ID", "Name", "Orders", "Total Spent", "Unpaid")
		fmt.Println("----------------------------------------------------------------------------------")

		orders := appInstance.Orders.Orders()
		for _, client := range clients {
			unpaid := appInstance.Ledger.UnpaidBalance(client, orders)
			fmt.Printf("%-10s %-30s %-8d %-15s %-15s\n",
				shortID(client.ID),
				truncate(client.Name, 30),
				client.TotalOrders,
				formatMoney(client.TotalSpent),
				formatMoney(unpaid),
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		taxID, _ := cmd.Flags().GetString("tax-id")
		address, _ := cmd.Flags().GetString("address")
		notes, _ := cmd.Flags().GetString("notes")

		client := domain.NewClient(args[0])
		client.Email = email
		client.Phone = phone
		client.TaxID = taxID
		client.Address = address
		client.Notes = notes

		if err := appInstance.Ledger.Create(ctx, client); err != nil {
			return err
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.Name, shortID(client.ID))
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClientByArg(args[0])
		if err != nil {
			return err
		}

		// Update fields if flags provided
		updated := *client
		if cmd.Flags().Changed("name") {
			updated.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("email") {
			updated.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("phone") {
			updated.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("tax-id") {
			updated.TaxID, _ = cmd.Flags().GetString("tax-id")
		}
		if cmd.Flags().Changed("address") {
			updated.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("notes") {
			updated.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.Ledger.Update(ctx, &updated); err != nil {
			return err
		}

		fmt.Printf("✓ Client updated: %s\n", updated.Name)
		return nil
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a client",
	Long:  `Remove a client record. Their orders keep the client's contact snapshot.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := findClientByArg(args[0])
		if err != nil {
			return err
		}

		if err := appInstance.Ledger.Delete(ctx, client.ID); err != nil {
			return err
		}

		fmt.Printf("✓ Client removed: %s\n", client.Name)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a client with their order history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := findClientByArg(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (ID: %s)\n", client.Name, shortID(client.ID))
		if client.Email != "" {
			fmt.Printf("  Email:   %s\n", client.Email)
		}
		if client.Phone != "" {
			fmt.Printf("  Phone:   %s\n", client.Phone)
		}
		if client.TaxID != "" {
			fmt.Printf("  Tax ID:  %s\n", client.TaxID)
		}
		if client.Address != "" {
			fmt.Printf("  Address: %s\n", client.Address)
		}
		if client.Notes != "" {
			fmt.Printf("  Notes:   %s\n", client.Notes)
		}

		orders := appInstance.Orders.OrderHistory(client)
		fmt.Printf("\nOrders: %d, spent %s, unpaid %s\n",
			client.TotalOrders,
			formatMoney(client.TotalSpent),
			formatMoney(appInstance.Ledger.UnpaidBalance(client, appInstance.Orders.Orders())),
		)
		for _, order := range orders {
			fmt.Printf("  %-10s %-16s %-25s %-12s %s\n",
				shortID(order.ID),
				order.Date.Format("2006-01-02 15:04"),
				truncate(order.Name, 25),
				order.Status,
				formatMoney(order.Price),
			)
		}
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsRemoveCmd)
	clientsCmd.AddCommand(clientsShowCmd)

	// Add flags
	clientsAddCmd.Flags().String("email", "", "Client email")
	clientsAddCmd.Flags().String("phone", "", "Client phone")
	clientsAddCmd.Flags().String("tax-id", "", "Client tax ID")
	clientsAddCmd.Flags().String("address", "", "Client address")
	clientsAddCmd.Flags().String("notes", "", "Notes about the client")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("phone", "", "New phone")
	clientsEditCmd.Flags().String("tax-id", "", "New tax ID")
	clientsEditCmd.Flags().String("address", "", "New address")
	clientsEditCmd.Flags().String("notes", "", "New notes")
}
