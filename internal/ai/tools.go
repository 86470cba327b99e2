package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	jsoniter "github.com/json-iterator/go"

	"go-pos-dashboard/internal/dashboard"
	"go-pos-dashboard/internal/inventory"
	"go-pos-dashboard/internal/report"
	"go-pos-dashboard/internal/view"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ToolCheckInventory   = "check_inventory"
	ToolDashboardSummary = "get_dashboard_summary"
	ToolTodaySales       = "get_today_sales"
	ToolDailySummary     = "generate_daily_summary"
)

// Declarations are the function tools offered to the model. All of them only
// read from the shop API.
func Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        ToolCheckInventory,
			Description: "Get the full product list. Use this to find ANY product details like ID, Name, Price, Category, Stock or stock status.",
		},
		{
			Name:        ToolDashboardSummary,
			Description: "Get today's sales total, today's transaction count and this month's revenue.",
		},
		{
			Name:        ToolTodaySales,
			Description: "List every sale recorded today with time, product, quantity and total.",
		},
		{
			Name:        ToolDailySummary,
			Description: "Generate the end-of-day report text with category and payment breakdowns.",
		},
	}
}

// Toolbox runs the tools against the shop API.
type Toolbox struct {
	src      dashboard.Source
	shopName string
	loc      *time.Location
	clock    func() time.Time
}

func NewToolbox(src dashboard.Source, shopName string, loc *time.Location) *Toolbox {
	if loc == nil {
		loc = time.Local
	}
	return &Toolbox{src: src, shopName: shopName, loc: loc, clock: time.Now}
}

func (t *Toolbox) now() time.Time {
	return t.clock().In(t.loc)
}

type simpleProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    *int   `json:"stock,omitempty"`
	Status   string `json:"status"`
}

type simpleSale struct {
	Time     string `json:"time"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// Dispatch runs one tool call and returns the function response payload.
func (t *Toolbox) Dispatch(ctx context.Context, name string, _ map[string]any) (map[string]any, error) {
	switch name {
	case ToolCheckInventory:
		products, err := t.src.Products(ctx)
		if err != nil {
			return nil, err
		}
		list := make([]simpleProduct, 0, len(products))
		for _, p := range products {
			sp := simpleProduct{
				ID:       p.ID,
				Name:     p.Name,
				Category: p.CategoryName,
				Price:    p.Price.StringFixed(2),
				Status:   inventory.Classify(p).Label(),
			}
			if p.IsStockable() {
				qty := p.StockQuantity
				sp.Stock = &qty
			}
			list = append(list, sp)
		}
		raw, err := json.MarshalToString(list)
		if err != nil {
			return nil, err
		}
		return map[string]any{"inventory": raw}, nil

	case ToolDashboardSummary:
		sum, err := t.src.DashboardData(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"today_total":   view.Money(sum.TodayTotal),
			"today_count":   sum.TodayCount,
			"monthly_total": view.Money(sum.MonthlyTotal),
		}, nil

	case ToolTodaySales:
		sales, err := t.src.TodaysSales(ctx)
		if err != nil {
			return nil, err
		}
		list := make([]simpleSale, 0, len(sales))
		for _, s := range sales {
			list = append(list, simpleSale{
				Time:     view.Clock(s.CreatedAt.In(t.loc)),
				Product:  s.DisplayName(),
				Quantity: s.Quantity,
				Total:    view.Currency + view.Fixed2(s.TotalAmount),
			})
		}
		raw, err := json.MarshalToString(list)
		if err != nil {
			return nil, err
		}
		return map[string]any{"sales": raw, "count": len(list)}, nil

	case ToolDailySummary:
		sum, err := t.src.DashboardData(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"summary": report.GenerateSummaryText(sum, t.now(), t.shopName)}, nil

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}
