package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/sales"
	"go-pos-dashboard/internal/view"
)

type saleFlags struct {
	product  string
	quantity string
	price    string
	payment  string
	customer string
	phone    string
	notes    string
}

func newSellCommand(env *Env) *cobra.Command {
	var f saleFlags
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Record a sale",
		Long: `Record a sale through the shop API.

The product may be given by id or by name. Without --price the catalog price
is used; without --payment the first payment method is used.`,
		Example: `  # Two teas paid in cash
  posctl sell --product Tea --quantity 2

  # A samosa at a custom price, paid by method 2
  posctl sell --product 2 --price 12.50 --payment 2 --customer Karim`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			n := env.notifier()

			cat, err := env.Board.Loader().LoadProducts(ctx, n)
			if err != nil {
				printToasts(out, n)
				return err
			}
			payments, _ := env.Board.Loader().LoadPaymentMethods(ctx, n)

			d := sales.Draft{
				Product:       resolveProduct(cat, f.product),
				Quantity:      f.quantity,
				UnitPrice:     f.price,
				PaymentMethod: f.payment,
				CustomerName:  f.customer,
				CustomerPhone: f.phone,
				Notes:         f.notes,
			}
			if d.UnitPrice == "" && d.ProductID() != 0 {
				picked, sel := sales.Pick(cat, d, n)
				if sel.ProductID() == 0 {
					printToasts(out, n)
					return fmt.Errorf("cannot sell %q", f.product)
				}
				d = picked
			}
			if d.PaymentMethod == "" && payments.Default() != 0 {
				d.PaymentMethod = strconv.Itoa(payments.Default())
			}
			return submit(ctx, out, env, cat, d, n)
		},
	}

	cmd.Flags().StringVarP(&f.product, "product", "p", "", "Product id or name")
	cmd.Flags().StringVarP(&f.quantity, "quantity", "q", "1", "Quantity")
	cmd.Flags().StringVar(&f.price, "price", "", "Unit price (default: catalog price)")
	cmd.Flags().StringVar(&f.payment, "payment", "", "Payment method id (default: first method)")
	cmd.Flags().StringVar(&f.customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	return cmd
}

func newQuickSaleCommand(env *Env) *cobra.Command {
	var (
		price   string
		payment string
		yes     bool
	)
	cmd := &cobra.Command{
		Use:   "quick-sale NAME",
		Short: "Prepare a one-unit sale of a quick-action product",
		Example: `  # Preview, then record
  posctl quick-sale Tea
  posctl quick-sale Tea --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			n := env.notifier()

			cat, err := env.Board.Loader().LoadProducts(ctx, n)
			if err != nil {
				printToasts(out, n)
				return err
			}
			payments, _ := env.Board.Loader().LoadPaymentMethods(ctx, n)

			form := sales.QuickSale(cat, args[0], price, n)
			d := form.Draft
			d.PaymentMethod = payment
			if d.PaymentMethod == "" && payments.Default() != 0 {
				d.PaymentMethod = strconv.Itoa(payments.Default())
			}
			printForm(out, form, d)

			if !yes {
				printToasts(out, n)
				fmt.Fprintln(out, "Run again with --yes to record this sale.")
				return nil
			}
			return submit(ctx, out, env, cat, d, n)
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "Price used when the product is not in the catalog")
	cmd.Flags().StringVar(&payment, "payment", "", "Payment method id (default: first method)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Record the sale instead of only preparing it")
	return cmd
}

// resolveProduct turns a product name into its id. Ids and unknown names are
// passed through for validation to judge.
func resolveProduct(cat *catalog.Catalog, ref string) string {
	ref = strings.TrimSpace(ref)
	if _, err := strconv.Atoi(ref); err == nil || ref == "" {
		return ref
	}
	if e, ok := cat.FindByName(ref); ok {
		return strconv.Itoa(e.Product.ID)
	}
	return ref
}

func printForm(w io.Writer, form sales.Form, d sales.Draft) {
	product := "(not in catalog)"
	if form.Selection.ProductID() != 0 {
		product = form.Selection.Entry.Label
	}
	fmt.Fprintf(w, "Product:    %s\n", product)
	for _, line := range form.Selection.Info {
		fmt.Fprintf(w, "            %s\n", line)
	}
	fmt.Fprintf(w, "Quantity:   %s\n", d.Quantity)
	fmt.Fprintf(w, "Unit price: %s%s\n", view.Currency, d.UnitPrice)
	fmt.Fprintf(w, "Total:      %s%s\n", view.Currency, d.Total())
}

func submit(ctx context.Context, w io.Writer, env *Env, cat *catalog.Catalog, d sales.Draft, n *notify.Notifier) error {
	res, err := env.Sales.Submit(ctx, cat, d, n)
	printToasts(w, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Sale #%d: %d x %s = %s%s\n",
		res.Sale.ID, res.Sale.Quantity, res.Sale.DisplayName(), view.Currency, view.Fixed2(res.Sale.TotalAmount))
	if res.Snapshot != nil {
		printStats(w, res.Snapshot.Stats)
	}
	return nil
}
