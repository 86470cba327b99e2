package models

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// ProductType is the variant tag the shop API attaches to every product.
type ProductType string

const (
	// Stockable products are tracked by an on-hand quantity.
	Stockable ProductType = "stockable"
	// Instant products (non_stockable on the wire) are always available.
	Instant ProductType = "non_stockable"
)

// Product - one catalog entry as served by GET /products/
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"` // DRF sends decimals as strings, decimal accepts both
	CategoryName  string          `json:"category_name"`
	ProductType   ProductType     `json:"product_type"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	IsQuickAction bool            `json:"is_quick_action"`
}

// IsStockable reports whether availability is limited by StockQuantity.
func (p Product) IsStockable() bool {
	return p.ProductType == Stockable
}

// PaymentMethod - cash, bKash, card...
type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SalePayload is the POST /sales/ body.
type SalePayload struct {
	Product       int     `json:"product"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	PaymentMethod int     `json:"payment_method"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         string  `json:"notes"`
}

// SaleRecord - a sale as returned by /sales/today/
type SaleRecord struct {
	ID                int             `json:"id"`
	ProductName       string          `json:"product_name"`
	ItemName          string          `json:"item_name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaymentMethodName string          `json:"payment_method_name"`
	CustomerName      string          `json:"customer_name"`
	CreatedAt         Timestamp       `json:"created_at"`
}

// DisplayName prefers product_name and falls back to the legacy item_name.
func (s SaleRecord) DisplayName() string {
	if s.ProductName != "" {
		return s.ProductName
	}
	return s.ItemName
}

// CategoryBreakdown is one row of today's sales grouped by category.
type CategoryBreakdown struct {
	CategoryName *string         `json:"category__name"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
}

// UnmarshalJSON accepts both category__name and the ORM lookup key
// product__category__name that the dashboard endpoint actually emits.
func (c *CategoryBreakdown) UnmarshalJSON(data []byte) error {
	var raw struct {
		CategoryName        *string         `json:"category__name"`
		ProductCategoryName *string         `json:"product__category__name"`
		Count               int             `json:"count"`
		Total               decimal.Decimal `json:"total"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.CategoryName = raw.CategoryName
	if c.CategoryName == nil {
		c.CategoryName = raw.ProductCategoryName
	}
	c.Count = raw.Count
	c.Total = raw.Total
	return nil
}

// PaymentBreakdown is one row of today's sales grouped by payment method.
type PaymentBreakdown struct {
	PaymentMethodName *string         `json:"payment_method__name"`
	Count             int             `json:"count"`
	Total             decimal.Decimal `json:"total"`
}

// DashboardSummary - GET /dashboard-data/. Server derived, never cached.
type DashboardSummary struct {
	TodayTotal        decimal.Decimal     `json:"today_total"`
	TodayCount        int                 `json:"today_count"`
	MonthlyTotal      decimal.Decimal     `json:"monthly_total"`
	RecentSales       []SaleRecord        `json:"recent_sales"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	PaymentBreakdown  []PaymentBreakdown  `json:"payment_breakdown"`
}

// TodaySalesCount - GET /today-sales-count/
type TodaySalesCount struct {
	TodayCount int             `json:"today_count"`
	TodayTotal decimal.Decimal `json:"today_total"`
	Date       string          `json:"date"`
}

// User - a staff member allowed into the dashboard (local store)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Phone        string    `gorm:"uniqueIndex;size:17" json:"phone"`
	FirstName    string    `gorm:"size:50" json:"first_name"`
	LastName     string    `gorm:"size:50" json:"last_name"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'staff'
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Preference - per-device UI state. The only flag kept is the install banner.
type Preference struct {
	ID              uint      `gorm:"primaryKey"`
	DeviceKey       string    `gorm:"uniqueIndex;size:64"`
	BannerDismissed bool      `gorm:"default:false"`
	UpdatedAt       time.Time
}
