// Package cli is posctl, the terminal front end of the dashboard. It drives
// the same catalog, sales and report packages as the web pages.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/apiclient"
	"go-pos-dashboard/internal/catalog"
	"go-pos-dashboard/internal/config"
	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/database"
	"go-pos-dashboard/internal/logger"
	"go-pos-dashboard/internal/notify"
	"go-pos-dashboard/internal/report"
	"go-pos-dashboard/internal/sales"
	"go-pos-dashboard/internal/session"
	"go-pos-dashboard/internal/utils"
	"go-pos-dashboard/internal/view"
)

var version = "1.0.0"

// Env holds what the commands run against. Fields left nil are built from
// Config on first use.
type Env struct {
	Config    *config.Config
	Client    *apiclient.Client
	Board     *dashboard.Board
	Sales     *sales.Workflow
	Banners   session.BannerStore
	Clipboard report.Clipboard
	DeviceKey string
	Logger    *zap.Logger

	now func() time.Time
}

// NewEnv wires the gateway and services from cfg. The local store is only
// opened by the banner commands.
func NewEnv(cfg *config.Config) *Env {
	client := apiclient.New(apiclient.Config{
		Origin:        cfg.APIBaseURL,
		SessionCookie: cfg.APISessionCookie,
		Timeout:       cfg.APITimeout,
	}, logger.WithComponent("apiclient"))
	board := dashboard.NewBoard(
		catalog.NewLoader(client, cfg.LowStockWarning, logger.WithComponent("catalog")),
		dashboard.NewPresenter(client, cfg.Location(), logger.WithComponent("dashboard")),
	)
	return &Env{
		Config:    cfg,
		Client:    client,
		Board:     board,
		Sales:     sales.NewWorkflow(client, board, logger.WithComponent("sales")),
		Clipboard: report.SystemClipboard(),
		DeviceKey: utils.GetDeviceID(),
		Logger:    logger.WithComponent("cli"),
	}
}

func (e *Env) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *Env) notifier() *notify.Notifier {
	return notify.New(e.Logger)
}

func (e *Env) banners() (session.BannerStore, error) {
	if e.Banners != nil {
		return e.Banners, nil
	}
	db, err := database.Connect(e.Config.DBDriver, e.Config.DBDSN, e.Logger)
	if err != nil {
		return nil, err
	}
	e.Banners = session.NewGormBannerStore(db)
	return e.Banners, nil
}

// NewRootCommand builds posctl with every subcommand attached.
func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "posctl",
		Short: "posctl - sell and check the day's numbers from a terminal",
		Long: `posctl talks to the shop API the same way the dashboard does.

Required environment variables:
  API_BASE_URL - origin of the shop, e.g. http://localhost:8000
Optional:
  API_SESSION_COOKIE - session cookie forwarded to the shop API
  LOW_STOCK_WARNING  - quantity at or below which a sale warns (default 5)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProductsCommand(env),
		newStockCommand(env),
		newTodayCommand(env),
		newDashboardCommand(env),
		newSellCommand(env),
		newQuickSaleCommand(env),
		newSummaryCommand(env),
		newBannerCommand(env),
		newStatusCommand(env),
	)
	return root
}

// Execute runs posctl and exits non-zero on failure.
func Execute(env *Env) {
	if err := NewRootCommand(env).Execute(); err != nil {
		env.Logger.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printToasts writes the notifications a command produced, one per line.
func printToasts(w io.Writer, n *notify.Notifier) {
	for _, t := range n.Active() {
		fmt.Fprintf(w, "%s %s\n", t.Icon(), t.Message)
	}
}

func printTable(w io.Writer, t view.Table) {
	if t.IsEmpty() {
		fmt.Fprintln(w, t.Empty)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Text() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func printStats(w io.Writer, s dashboard.Stats) {
	for _, st := range s.Items() {
		fmt.Fprintf(w, "%-16s %s\n", st.Label+":", st.Value)
	}
}
