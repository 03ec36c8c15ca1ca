package cli

import (
	"fmt"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice [order-id]",
	Short: "Render an invoice PDF for an order",
	Long: `Render an invoice PDF into the configured output directory. The supplier
block comes from the business profile in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := findOrderByArg(args[0])
		if err != nil {
			return err
		}

		var client *domain.Client
		if order.ClientID != nil {
			client = appInstance.Ledger.Get(*order.ClientID)
		}
		if client == nil {
			client = appInstance.Ledger.FindByName(order.ClientName)
		}

		path, err := appInstance.Invoices.Render(order, client)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice written: %s\n", path)
		return nil
	},
}
