package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List pending session reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		dueOnly, _ := cmd.Flags().GetBool("due")

		reminders, err := appInstance.Reminders.Pending(ctx)
		if err != nil {
			return err
		}
		if dueOnly {
			reminders, err = appInstance.Reminders.Due(ctx, time.Now())
			if err != nil {
				return err
			}
		}

		if len(reminders) == 0 {
			fmt.Println("No pending reminders")
			return nil
		}

		fmt.Printf("%-18s %-25s %s\n", "Fires", "Title", "Body")
		fmt.Println("----------------------------------------------------------------------")
		for _, r := range reminders {
			fmt.Printf("%-18s %-25s %s\n",
				r.FireAt.Format("2006-01-02 15:04"),
				truncate(r.Title, 25),
				r.Body,
			)
		}
		return nil
	},
}

func init() {
	remindersCmd.Flags().Bool("due", false, "Only reminders whose fire time has passed")
}
