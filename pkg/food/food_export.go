package food

import (
	"Pantry-Tracker/domain"
	"context"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Inventory"

var exportHeaders = []any{
	"Name", "Category", "Quantity", "Unit", "Purchase Date", "Expiry Date",
	"Status", "Days Until Expiry", "Low Stock Alert", "Low Stock Threshold", "Notes",
}

// ExportInventory renders the filtered inventory as an xlsx workbook.
func (s *foodService) ExportInventory(ctx context.Context, userID string, query domain.FoodItemQuery) ([]byte, error) {
	items, createdAt, err := s.filtered(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	now := s.now()
	for i, item := range items {
		res := NewFoodItemResponse(item, createdAt[item.ID], now)
		status := res.Status
		if status == "" {
			status = res.StatusError
		}
		qty, _ := item.Quantity.Float64()
		threshold, _ := item.LowStockThreshold.Float64()
		row := []any{
			item.Name, item.Category, qty, item.Unit, item.PurchaseDate, item.ExpiryDate,
			status, res.DaysUntilExpiry, item.LowStockAlert, threshold, item.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
