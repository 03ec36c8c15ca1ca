package cli

import (
	"fmt"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List session templates",
	Long:  `List the built-in session templates usable with 'orders add --template'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-25s %-10s %-12s %s\n", "Name", "Duration", "Price", "Deposit")
		fmt.Println("-----------------------------------------------------------------")
		for _, tpl := range domain.DefaultTemplates {
			fmt.Printf("%-25s %-10s %-12s %s\n",
				tpl.Name,
				fmt.Sprintf("%dm", tpl.DurationMinutes),
				formatMoney(tpl.Price),
				formatMoney(tpl.Deposit),
			)
		}
		return nil
	},
}
