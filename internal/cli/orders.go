package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/service"
	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage photo session orders",
	Long:  `List, add, edit, and delete orders, and record payments and status changes.`,
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFilter, _ := cmd.Flags().GetString("status")
		upcoming, _ := cmd.Flags().GetBool("upcoming")

		var status *domain.OrderStatus
		if statusFilter != "" {
			s := domain.OrderStatus(statusFilter)
			if !validStatus(s) {
				return fmt.Errorf("unknown status %q", statusFilter)
			}
			status = &s
		}

		now := time.Now()
		var shown []*domain.Order
		for _, order := range appInstance.Orders.Orders() {
			if status != nil && order.Status != *status {
				continue
			}
			if upcoming && order.Date.Before(now) {
				continue
			}
			shown = append(shown, order)
		}

		if len(shown) == 0 {
			fmt.Println("No orders found")
			return nil
		}

		// Print table header
		fmt.Printf("%-10s %-16s %-25s %-20s %-12s %-12s %s\n",
			"ID", "Date", "Name", "Client", "Status", "Price", "Paid")
		fmt.Println("--------------------------------------------------------------------------------------------------------")

		for _, order := range shown {
			fmt.Printf("%-10s %-16s %-25s %-20s %-12s %-12s %s\n",
				shortID(order.ID),
				order.Date.Format("2006-01-02 15:04"),
				truncate(order.Name, 25),
				truncate(order.ClientName, 20),
				order.Status,
				formatMoney(order.Price),
				formatMoney(order.PaidAmount()),
			)
		}

		fmt.Printf("\nTotal: %d order(s)\n", len(shown))
		return nil
	},
}

var ordersAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		in := service.NewOrderInput{Name: args[0]}

		if template, _ := cmd.Flags().GetString("template"); template != "" {
			tpl := findTemplate(template)
			if tpl == nil {
				return fmt.Errorf("unknown template %q (see 'shutterbook templates')", template)
			}
			in.Name = tpl.Name
			in.DurationMinutes = tpl.DurationMinutes
			in.Price = tpl.Price
			in.Deposit = tpl.Deposit
			in.Notes = tpl.Description
			if args[0] != "" {
				in.Name = args[0]
			}
		}

		dateStr, _ := cmd.Flags().GetString("date")
		date, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		in.Date = date

		in.ClientName, _ = cmd.Flags().GetString("client")
		in.ClientEmail, _ = cmd.Flags().GetString("email")
		in.ClientPhone, _ = cmd.Flags().GetString("phone")
		in.Location, _ = cmd.Flags().GetString("location")
		if cmd.Flags().Changed("price") {
			in.Price, _ = cmd.Flags().GetFloat64("price")
		}
		if cmd.Flags().Changed("deposit") {
			in.Deposit, _ = cmd.Flags().GetFloat64("deposit")
		} else if in.Deposit == 0 {
			in.Deposit = appInstance.Config.Orders.DefaultDeposit
		}
		if cmd.Flags().Changed("duration") {
			in.DurationMinutes, _ = cmd.Flags().GetInt("duration")
		}
		if cmd.Flags().Changed("notes") {
			in.Notes, _ = cmd.Flags().GetString("notes")
		}

		order, err := appInstance.Orders.Add(ctx, in)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Order created: %s (ID: %s)\n", order.Name, shortID(order.ID))
		fmt.Printf("  Date:  %s\n", order.Date.Format("2006-01-02 15:04"))
		fmt.Printf("  Price: %s", formatMoney(order.Price))
		if order.Deposit > 0 {
			fmt.Printf(", deposit %s", formatMoney(order.Deposit))
		}
		fmt.Println()
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := findOrderByArg(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (ID: %s)\n", order.Name, shortID(order.ID))
		fmt.Printf("  Status:   %s\n", order.Status)
		fmt.Printf("  Date:     %s\n", order.Date.Format("2006-01-02 15:04"))
		fmt.Printf("  Duration: %s\n", order.FormattedDuration())
		if order.Location != "" {
			fmt.Printf("  Location: %s\n", order.Location)
		}
		if order.ClientName != "" {
			fmt.Printf("  Client:   %s\n", order.ClientName)
		}
		fmt.Printf("  Price:    %s\n", formatMoney(order.Price))
		if order.Deposit > 0 {
			fmt.Printf("  Deposit:  %s (paid: %v)\n", formatMoney(order.Deposit), order.DepositPaid)
			fmt.Printf("  Remaining: %s (paid: %v)\n", formatMoney(order.RemainingAmount()), order.FinalPaid)
		} else {
			fmt.Printf("  Paid in full: %v\n", order.FinalPaid)
		}
		fmt.Printf("  Received: %s, outstanding %s\n",
			formatMoney(order.PaidAmount()), formatMoney(order.UnpaidAmount()))
		if order.Notes != "" {
			fmt.Printf("  Notes:    %s\n", order.Notes)
		}
		return nil
	},
}

var ordersEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		order, err := findOrderByArg(args[0])
		if err != nil {
			return err
		}

		// Update fields if flags provided
		updated := *order
		if cmd.Flags().Changed("name") {
			updated.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("client") {
			updated.ClientName, _ = cmd.Flags().GetString("client")
		}
		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			updated.Date = date
		}
		if cmd.Flags().Changed("location") {
			updated.Location, _ = cmd.Flags().GetString("location")
		}
		if cmd.Flags().Changed("price") {
			updated.Price, _ = cmd.Flags().GetFloat64("price")
		}
		if cmd.Flags().Changed("deposit") {
			updated.Deposit, _ = cmd.Flags().GetFloat64("deposit")
		}
		if cmd.Flags().Changed("duration") {
			updated.DurationMinutes, _ = cmd.Flags().GetInt("duration")
		}
		if cmd.Flags().Changed("notes") {
			updated.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.Orders.Update(ctx, &updated); err != nil {
			return err
		}

		fmt.Printf("✓ Order updated: %s\n", updated.Name)
		return nil
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Change order status",
	Long:  `Set the order status to planned, in_progress, completed, delivered, or cancelled.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		order, err := findOrderByArg(args[0])
		if err != nil {
			return err
		}

		status := domain.OrderStatus(args[1])
		if !validStatus(status) {
			return fmt.Errorf("unknown status %q", args[1])
		}

		if err := appInstance.Orders.UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}

		fmt.Printf("✓ %s is now %s\n", order.Name, status)
		return nil
	},
}

var ordersPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record a payment on an order",
	Long: `Record a payment. With --deposit the deposit is marked paid; with --final
the final payment is marked paid. Client totals are rebuilt afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		order, err := findOrderByArg(args[0])
		if err != nil {
			return err
		}

		deposit, _ := cmd.Flags().GetBool("deposit")
		final, _ := cmd.Flags().GetBool("final")
		undo, _ := cmd.Flags().GetBool("undo")
		if deposit == final {
			return fmt.Errorf("specify exactly one of --deposit or --final")
		}

		if deposit {
			if err := appInstance.Orders.SetDepositPaid(ctx, order.ID, !undo); err != nil {
				return err
			}
			fmt.Printf("✓ Deposit paid=%v on %s\n", !undo, order.Name)
			return nil
		}

		if err := appInstance.Orders.SetFinalPaymentPaid(ctx, order.ID, !undo); err != nil {
			return err
		}
		fmt.Printf("✓ Final payment paid=%v on %s\n", !undo, order.Name)
		return nil
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete [id]...",
	Short: "Delete one or more orders",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 1 {
			order, err := findOrderByArg(args[0])
			if err != nil {
				return err
			}
			if err := appInstance.Orders.Delete(ctx, order.ID); err != nil {
				return err
			}
			fmt.Printf("✓ Order deleted: %s\n", order.Name)
			return nil
		}

		var ids []uuid.UUID
		for _, arg := range args {
			order, err := findOrderByArg(arg)
			if err != nil {
				return err
			}
			ids = append(ids, order.ID)
		}
		if err := appInstance.Orders.DeleteMany(ctx, ids); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %d order(s)\n", len(ids))
		return nil
	},
}

func validStatus(s domain.OrderStatus) bool {
	for _, known := range domain.OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func findTemplate(name string) *domain.OrderTemplate {
	for i := range domain.DefaultTemplates {
		if domain.DefaultTemplates[i].Name == name {
			return &domain.DefaultTemplates[i]
		}
	}
	return nil
}

// parseDate accepts "2006-01-02 15:04" or a bare date (midnight local time)
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("--date is required")
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

func init() {
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersAddCmd)
	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersEditCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
	ordersCmd.AddCommand(ordersPayCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)

	// List flags
	ordersListCmd.Flags().String("status", "", "Filter by status")
	ordersListCmd.Flags().Bool("upcoming", false, "Only future sessions")

	// Add flags
	ordersAddCmd.Flags().String("date", "", "Session date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	ordersAddCmd.MarkFlagRequired("date")
	ordersAddCmd.Flags().String("client", "", "Client name")
	ordersAddCmd.Flags().String("email", "", "Client email")
	ordersAddCmd.Flags().String("phone", "", "Client phone")
	ordersAddCmd.Flags().String("location", "", "Session location")
	ordersAddCmd.Flags().Float64("price", 0, "Agreed price")
	ordersAddCmd.Flags().Float64("deposit", 0, "Deposit amount")
	ordersAddCmd.Flags().Int("duration", 0, "Duration in minutes")
	ordersAddCmd.Flags().String("notes", "", "Notes")
	ordersAddCmd.Flags().String("template", "", "Prefill from a session template")

	// Edit flags
	ordersEditCmd.Flags().String("name", "", "New name")
	ordersEditCmd.Flags().String("client", "", "New client name")
	ordersEditCmd.Flags().String("date", "", "New date")
	ordersEditCmd.Flags().String("location", "", "New location")
	ordersEditCmd.Flags().Float64("price", 0, "New price")
	ordersEditCmd.Flags().Float64("deposit", 0, "New deposit")
	ordersEditCmd.Flags().Int("duration", 0, "New duration in minutes")
	ordersEditCmd.Flags().String("notes", "", "New notes")

	// Pay flags
	ordersPayCmd.Flags().Bool("deposit", false, "Mark the deposit paid")
	ordersPayCmd.Flags().Bool("final", false, "Mark the final payment paid")
	ordersPayCmd.Flags().Bool("undo", false, "Unmark instead of mark")
}
