package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-pos-dashboard/internal/models"
)

func stockable(qty, min int) models.Product {
	return models.Product{Name: "Samosa", ProductType: models.Stockable, StockQuantity: qty, MinStockLevel: min}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		want    Status
		class   string
	}{
		{"zero stock", stockable(0, 5), OutOfStock, "stock-out"},
		{"negative stock", stockable(-2, 5), OutOfStock, "stock-out"},
		{"at threshold", stockable(5, 5), LowStock, "stock-low"},
		{"below threshold", stockable(1, 5), LowStock, "stock-low"},
		{"above threshold", stockable(6, 5), InStock, "stock-ok"},
		{"zero threshold", stockable(1, 0), InStock, "stock-ok"},
		{"instant", models.Product{ProductType: models.Instant}, NotTracked, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.product)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.class, got.Class())
		})
	}
}

func TestSellable(t *testing.T) {
	assert.False(t, Sellable(stockable(0, 0)))
	assert.True(t, Sellable(stockable(1, 10)))
	assert.True(t, Sellable(models.Product{ProductType: models.Instant, StockQuantity: 0}))
}

func TestSelectionWarning(t *testing.T) {
	assert.Equal(t, Block, SelectionWarning(stockable(0, 2), DefaultWarnAt))
	assert.Equal(t, WarnLow, SelectionWarning(stockable(5, 2), DefaultWarnAt))
	assert.Equal(t, WarnLow, SelectionWarning(stockable(1, 2), DefaultWarnAt))
	assert.Equal(t, NoWarning, SelectionWarning(stockable(6, 10), DefaultWarnAt))
	assert.Equal(t, NoWarning, SelectionWarning(models.Product{ProductType: models.Instant}, DefaultWarnAt))
}
