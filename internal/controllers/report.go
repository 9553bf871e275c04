package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"labstock/internal/dto"
	"labstock/internal/services"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetInventoryReport отдаёт сводку по инвентарю; ?format=xlsx выгружает её
// файлом, по умолчанию — JSON.
func (c *ReportController) GetInventoryReport(ctx echo.Context) error {
	format := strings.ToLower(ctx.QueryParam("format"))

	data, total, err := c.reportService.GetInventoryReport(ctx.Request().Context())
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось сформировать отчёт")
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK, total)
}

var inventoryReportHeaders = []string{
	"ID", "Оборудование", "Лаборатория", "Состояние",
	"Всего единиц", "Доступно", "Выдано", "Повреждено",
}

func inventoryRowToSlice(row dto.InventoryReportRowDTO) []interface{} {
	return []interface{}{
		row.EquipmentID, row.EquipmentName, row.LaboratoryName, row.Condition,
		row.ItemsTotal, row.ItemsAvailable, row.ItemsBorrowed, row.ItemsDamaged,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.InventoryReportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Инвентарь"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &inventoryReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := inventoryRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "H", 15)

	fileName := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
