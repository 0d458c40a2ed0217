package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/report"
)

// ReportHandler serves the dashboard snapshot, per-domain statistics and
// the spreadsheet export.
type ReportHandler struct {
	Stats *report.Stats
}

func NewReportHandler(s *report.Stats) *ReportHandler { return &ReportHandler{Stats: s} }

// Dashboard returns all five domain statistics joined into one snapshot.
func (h *ReportHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	snap, err := h.Stats.DashboardSnapshot(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "dashboard statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "dashboard statistics retrieved successfully", "data": snap})
}

func (h *ReportHandler) StudentStats(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Stats.StudentStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "student statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student statistics retrieved successfully", "data": st})
}

func (h *ReportHandler) RoomStats(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Stats.RoomStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "room statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room statistics retrieved successfully", "data": st})
}

func (h *ReportHandler) ContractStats(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Stats.ContractStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "contract statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contract statistics retrieved successfully", "data": st})
}

func (h *ReportHandler) PaymentStats(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Stats.PaymentStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "payment statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment statistics retrieved successfully", "data": st})
}

func (h *ReportHandler) RequestStats(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Stats.RequestStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "request statistics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request statistics retrieved successfully", "data": st})
}

// Export renders one domain's statistics as an .xlsx workbook and streams
// it as a file download.
func (h *ReportHandler) Export(c echo.Context) error {
	domain := c.Param("domain")

	ctx, cancel := reqContext(c)
	defer cancel()

	table, err := h.Stats.TableFor(ctx, domain)
	if err != nil {
		if errors.Is(err, report.ErrUnknownDomain) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown report domain"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "report aggregation failed"})
	}
	buf, err := report.RenderExcel(table)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "report rendering failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s_report.xlsx", domain))
	return c.Blob(http.StatusOK, report.ExcelContentType, buf)
}
