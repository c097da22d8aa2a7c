package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/reporting"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// ReportHandler maneja los reportes financieros (protegido, rol contador o admin).
type ReportHandler struct {
	statements *reporting.StatementUseCase
	pdf        *reporting.StatementPDFUseCase
	expenses   *reporting.ExpenseAggregator
}

// NewReportHandler construye el handler.
func NewReportHandler(
	statements *reporting.StatementUseCase,
	pdf *reporting.StatementPDFUseCase,
	expenses *reporting.ExpenseAggregator,
) *ReportHandler {
	return &ReportHandler{statements: statements, pdf: pdf, expenses: expenses}
}

// ProfitLoss godoc
// @Summary      Estado de resultados del período
// @Description  Ingresos, COGS, utilidad bruta, gastos operativos por categoría
//
//	y utilidad neta del rango [start_date, end_date] inclusivo.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.PeriodStatementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	start, end, err := reporting.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return rangeError(c, err)
	}
	statement, err := h.statements.BuildStatement(c.Context(), companyID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(statement)
}

// Compare godoc
// @Summary      Comparar dos períodos
// @Description  Resumen de cada período y variación porcentual de las cinco
//
//	métricas. Base cero: 100 si el actual es positivo, 0 si siguió en cero.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date       query  string  true  "YYYY-MM-DD"
// @Param        end_date         query  string  true  "YYYY-MM-DD"
// @Param        prev_start_date  query  string  true  "YYYY-MM-DD"
// @Param        prev_end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.ComparisonDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss/compare [get]
func (h *ReportHandler) Compare(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	currStart, currEnd, err := reporting.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return rangeError(c, err)
	}
	prevStart, prevEnd, err := reporting.ParsePeriod(c.Query("prev_start_date"), c.Query("prev_end_date"))
	if err != nil {
		return rangeError(c, err)
	}
	comparison, err := h.statements.Compare(c.Context(), companyID, currStart, currEnd, prevStart, prevEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(comparison)
}

// Expenses godoc
// @Summary      Gastos operativos del período por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.OperatingExpensesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	start, end, err := reporting.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return rangeError(c, err)
	}
	total, breakdown, err := h.expenses.Breakdown(c.Context(), companyID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OperatingExpensesDTO{Total: total, Breakdown: breakdown})
}

// ProfitLossPDF godoc
// @Summary      Estado de resultados del período en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss/pdf [get]
func (h *ReportHandler) ProfitLossPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	start, end, err := reporting.ParsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return rangeError(c, err)
	}
	pdfBytes, filename, err := h.pdf.DownloadStatementPDF(c.Context(), companyID, c.Query("company_name", "Kardex"), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// rangeError responde 400 distinguiendo rango ausente de rango malformado.
func rangeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidRange) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_DATE_RANGE", Message: err.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
}
