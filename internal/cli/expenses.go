package cli

import (
	"context"
	"fmt"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/spf13/cobra"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Manage business expenses",
	Long:  `List, add, edit, and delete business expenses.`,
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryFilter, _ := cmd.Flags().GetString("category")

		var shown []*domain.Expense
		for _, e := range appInstance.Expenses.Expenses() {
			if categoryFilter != "" && string(e.Category) != categoryFilter {
				continue
			}
			shown = append(shown, e)
		}

		if len(shown) == 0 {
			fmt.Println("No expenses found")
			return nil
		}

		// Print table header
		fmt.Printf("%-10s %-12s %-30s %-12s %-12s %s\n", "ID", "Date", "Name", "Category", "Amount", "Recurring")
		fmt.Println("------------------------------------------------------------------------------------------")

		total := 0.0
		for _, e := range shown {
			recurring := ""
			if e.Recurring {
				recurring = "yes"
			}
			fmt.Printf("%-10s %-12s %-30s %-12s %-12s %s\n",
				shortID(e.ID),
				e.Date.Format("2006-01-02"),
				truncate(e.Name, 30),
				e.Category,
				formatMoney(e.Amount),
				recurring,
			)
			total += e.Amount
		}

		fmt.Printf("\nTotal: %d expense(s), %s\n", len(shown), formatMoney(total))
		return nil
	},
}

var expensesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		amount, _ := cmd.Flags().GetFloat64("amount")
		category, _ := cmd.Flags().GetString("category")
		recurring, _ := cmd.Flags().GetBool("recurring")
		notes, _ := cmd.Flags().GetString("notes")

		expense := domain.NewExpense(args[0], amount, domain.ParseExpenseCategory(category))
		expense.Recurring = recurring
		expense.Notes = notes
		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			expense.Date = date
		}

		if err := appInstance.Expenses.Add(ctx, expense); err != nil {
			return err
		}

		fmt.Printf("✓ Expense created: %s, %s (ID: %s)\n",
			expense.Name, formatMoney(expense.Amount), shortID(expense.ID))
		return nil
	},
}

var expensesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		expense, err := findExpenseByArg(args[0])
		if err != nil {
			return err
		}

		// Update fields if flags provided
		updated := *expense
		if cmd.Flags().Changed("name") {
			updated.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("amount") {
			updated.Amount, _ = cmd.Flags().GetFloat64("amount")
		}
		if cmd.Flags().Changed("category") {
			category, _ := cmd.Flags().GetString("category")
			updated.Category = domain.ParseExpenseCategory(category)
		}
		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			updated.Date = date
		}
		if cmd.Flags().Changed("recurring") {
			updated.Recurring, _ = cmd.Flags().GetBool("recurring")
		}
		if cmd.Flags().Changed("notes") {
			updated.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.Expenses.Update(ctx, &updated); err != nil {
			return err
		}

		fmt.Printf("✓ Expense updated: %s\n", updated.Name)
		return nil
	},
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		expense, err := findExpenseByArg(args[0])
		if err != nil {
			return err
		}

		if err := appInstance.Expenses.Delete(ctx, expense.ID); err != nil {
			return err
		}

		fmt.Printf("✓ Expense deleted: %s\n", expense.Name)
		return nil
	},
}

func init() {
	expensesCmd.AddCommand(expensesListCmd)
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesEditCmd)
	expensesCmd.AddCommand(expensesDeleteCmd)

	// List flags
	expensesListCmd.Flags().String("category", "", "Filter by category")

	// Add flags
	expensesAddCmd.Flags().Float64("amount", 0, "Expense amount (required)")
	expensesAddCmd.MarkFlagRequired("amount")
	expensesAddCmd.Flags().String("category", "other", "Category (equipment, travel, software, marketing, education, office, other)")
	expensesAddCmd.Flags().String("date", "", "Expense date (defaults to today)")
	expensesAddCmd.Flags().Bool("recurring", false, "Mark as recurring")
	expensesAddCmd.Flags().String("notes", "", "Notes")

	// Edit flags
	expensesEditCmd.Flags().String("name", "", "New name")
	expensesEditCmd.Flags().Float64("amount", 0, "New amount")
	expensesEditCmd.Flags().String("category", "", "New category")
	expensesEditCmd.Flags().String("date", "", "New date")
	expensesEditCmd.Flags().Bool("recurring", false, "New recurring flag")
	expensesEditCmd.Flags().String("notes", "", "New notes")
}
