package cli

import (
	"fmt"
	"strconv"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/service"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show business statistics",
	Long: `Show revenue, expenses and profit. With --year, the monthly revenue
breakdown covers that calendar year; without it, every month with revenue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders := appInstance.Orders.Orders()
		expenses := appInstance.Expenses.Expenses()

		var year *int
		if cmd.Flags().Changed("year") {
			y, _ := cmd.Flags().GetInt("year")
			year = &y
		}

		fmt.Println("Overview")
		fmt.Printf("  Orders:             %d\n", service.OrderCount(orders, year))
		fmt.Printf("  Recognized revenue: %s (completed and delivered)\n", formatMoney(service.CompletedRevenue(orders, year)))
		fmt.Printf("  Payments received:  %s\n", formatMoney(service.ActualRevenue(orders, year)))
		fmt.Printf("  Expenses:           %s\n", formatMoney(service.TotalExpenses(expenses, year)))
		fmt.Printf("  Net profit:         %s\n", formatMoney(service.NetProfit(orders, expenses, year)))

		points := service.MonthlyRevenue(orders, year)
		if len(points) > 0 {
			fmt.Println("\nMonthly revenue")
			for _, p := range points {
				fmt.Printf("  %-9s %s\n", p.Month.Format("Jan 2006"), formatMoney(p.Revenue))
			}
		}

		byCategory := service.ExpensesByCategory(expenses, year)
		if len(byCategory) > 0 {
			fmt.Println("\nExpenses by category")
			for _, category := range domain.ExpenseCategories {
				if amount, ok := byCategory[category]; ok {
					fmt.Printf("  %-12s %s\n", category, formatMoney(amount))
				}
			}
		}

		if years := service.AvailableYears(orders); len(years) > 0 {
			labels := make([]string, len(years))
			for i, y := range years {
				labels[i] = strconv.Itoa(y)
			}
			fmt.Printf("\nYears with orders: %v\n", labels)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("year", 0, "Restrict the monthly breakdown to a calendar year")
}
