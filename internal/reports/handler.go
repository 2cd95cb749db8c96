package reports

import (
	"fmt"
	"time"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GET /api/dashboard/summary
func DashboardSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customerCount, skuCount, pendingIndents, openOrders int64

		database.DB.Model(&models.Customer{}).Where("is_active = ?", true).Count(&customerCount)
		database.DB.Model(&models.SKU{}).Where("is_active = ?", true).Count(&skuCount)
		database.DB.Model(&models.PurchaseIndent{}).Where("status = ?", models.IndentStatusPending).Count(&pendingIndents)
		database.DB.Model(&models.SalesOrder{}).
			Where("status NOT IN ?", []models.SalesOrderStatus{
				models.SOStatusDelivered, models.SOStatusCancelled, models.SOStatusReturned,
			}).Count(&openOrders)

		var lowStock []models.SKU
		if err := database.DB.
			Where("is_active = ? AND current_stock <= minimum_stock", true).
			Order("current_stock ASC").
			Limit(20).
			Find(&lowStock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Low stock list could not be loaded")
		}

		var orderBreakdown []statusCount
		if err := database.DB.Model(&models.SalesOrder{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&orderBreakdown).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Order breakdown could not be loaded")
		}

		return c.JSON(fiber.Map{
			"customers":       customerCount,
			"skus":            skuCount,
			"pending_indents": pendingIndents,
			"open_orders":     openOrders,
			"low_stock":       lowStock,
			"order_breakdown": orderBreakdown,
		})
	}
}

// GET /api/reports/stock-export
// Current stock position as an Excel workbook, one row per active SKU.
func ExportStockReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var skus []models.SKU
		if err := database.DB.
			Preload("Warehouse").
			Where("is_active = ?", true).
			Order("code ASC").
			Find(&skus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock data could not be loaded")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Stock"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Code", "Name", "Category", "Warehouse", "Current Stock", "Reserved", "Available", "Minimum", "Cost Price", "Selling Price"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, sku := range skus {
			warehouseName := sku.Warehouse.Name
			costPrice, _ := sku.CostPrice.Float64()
			sellingPrice, _ := sku.SellingPrice.Float64()

			values := []interface{}{
				sku.Code,
				sku.Name,
				sku.Category,
				warehouseName,
				sku.CurrentStock,
				sku.ReservedStock,
				sku.CurrentStock - sku.ReservedStock,
				sku.MinimumStock,
				costPrice,
				sellingPrice,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		f.SetColWidth(sheet, "A", "D", 24)
		f.SetColWidth(sheet, "E", "J", 14)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Report could not be generated")
		}

		filename := fmt.Sprintf("stock-report-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
