package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Premium plans and payment history",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List premium plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.requireSession(); err != nil {
			return err
		}

		plans, err := app.client.Plans(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch plans: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tDAYS\tDESCRIPTION")
		for _, p := range plans {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.Price, p.DurationDays, p.Description)
		}
		return w.Flush()
	},
}

var plansBuyCmd = &cobra.Command{
	Use:   "buy <planId>",
	Short: "Create a payment order for a plan",
	Long: `Create a payment gateway order for a plan. Complete the payment in
the gateway, then confirm it with: vivah plans verify`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.requireSession()
		if err != nil {
			return err
		}

		planID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid plan id %q", args[0])
		}

		order, err := app.client.CreateOrder(cmd.Context(), sess.UserID, planID)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		fmt.Printf("Order %s created: %d %s\n", order.OrderID, order.Amount, order.Currency)
		fmt.Println("Complete the payment in the gateway, then run: vivah plans verify")
		return nil
	},
}

var (
	verifyOrderID   string
	verifyPaymentID string
	verifySignature string
)

var plansVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm a completed gateway payment",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.requireSession(); err != nil {
			return err
		}

		if verifyOrderID == "" || verifyPaymentID == "" || verifySignature == "" {
			return fmt.Errorf("--order, --payment, and --signature are all required")
		}

		if err := app.client.VerifyPayment(cmd.Context(), verifyOrderID, verifyPaymentID, verifySignature); err != nil {
			return fmt.Errorf("payment verification failed: %w", err)
		}
		fmt.Println("Payment verified. Your premium plan is active.")
		return nil
	},
}

var plansHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your payment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.requireSession()
		if err != nil {
			return err
		}

		payments, err := app.client.PaymentHistory(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("failed to fetch payment history: %w", err)
		}
		if len(payments) == 0 {
			fmt.Println("No payments yet.")
			return nil
		}

		if latest, err := app.client.LatestPayment(cmd.Context(), sess.UserID); err == nil && latest.PlanName != "" {
			fmt.Printf("Current plan: %s (paid %s)\n", latest.PlanName, latest.PaidAt)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLAN\tAMOUNT\tPAID")
		for _, p := range payments {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.ID, p.PlanName, p.Amount, p.PaidAt)
		}
		return w.Flush()
	},
}

func init() {
	plansVerifyCmd.Flags().StringVar(&verifyOrderID, "order", "", "Gateway order id")
	plansVerifyCmd.Flags().StringVar(&verifyPaymentID, "payment", "", "Gateway payment id")
	plansVerifyCmd.Flags().StringVar(&verifySignature, "signature", "", "Gateway payment signature")
	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansBuyCmd)
	plansCmd.AddCommand(plansVerifyCmd)
	plansCmd.AddCommand(plansHistoryCmd)
	rootCmd.AddCommand(plansCmd)
}
