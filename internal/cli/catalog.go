package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProductsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog as the sale form shows it",
		Example: `  # Show products with stock flags
  posctl products`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := env.notifier()
			ctx := cmd.Context()

			cat, err := env.Board.Loader().LoadProducts(ctx, n)
			payments, perr := env.Board.Loader().LoadPaymentMethods(ctx, n)
			printToasts(out, n)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRODUCT\tCATEGORY\tSTATUS")
			for _, e := range cat.Entries() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Product.ID, e.Label, e.Product.CategoryName, e.Status.Label())
			}
			tw.Flush()

			if perr == nil && len(payments.Methods) > 0 {
				fmt.Fprint(out, "\nPayment methods:")
				for _, m := range payments.Methods {
					fmt.Fprintf(out, " %d=%s", m.ID, m.Name)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newStockCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show stock levels of stockable products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := env.notifier()
			table, err := env.Board.Presenter().LoadStockData(cmd.Context(), n)
			printToasts(out, n)
			if err != nil {
				return err
			}
			printTable(out, table)
			return nil
		},
	}
}

func newTodayCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := env.notifier()
			table, err := env.Board.Presenter().LoadTodaysSales(cmd.Context(), n)
			printToasts(out, n)
			if err != nil {
				return err
			}
			printTable(out, table)
			return nil
		},
	}
}

func newDashboardCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's totals and the monthly revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := env.notifier()
			snap, err := env.Board.Refresh(cmd.Context(), n)
			printToasts(out, n)
			printStats(out, snap.Stats)
			return err
		},
	}
}
