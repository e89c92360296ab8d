package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"venuspay-go/internal/models"
)

type StatusTotals struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type SummaryResponse struct {
	Pending  StatusTotals `json:"pending"`
	Approved StatusTotals `json:"approved"`
	Total    StatusTotals `json:"total"`
}

// GET /admin/summary
func (s *Server) summary(c *gin.Context) {
	sum, err := s.store.Summary(c.Request.Context())
	if err != nil {
		s.logger.Error("summarise payments", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}

	res := SummaryResponse{
		Pending:  StatusTotals{Count: sum.Pending.Count, Amount: sum.Pending.Amount},
		Approved: StatusTotals{Count: sum.Approved.Count, Amount: sum.Approved.Amount},
	}
	res.Total = StatusTotals{
		Count:  res.Pending.Count + res.Approved.Count,
		Amount: res.Pending.Amount + res.Approved.Amount,
	}
	c.JSON(http.StatusOK, res)
}

const (
	exportSheet      = "Payments"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout = "20060102"
)

var exportHeader = []any{"ID", "Amount", "Screenshot", "Status", "Created At"}

// GET /admin/export.xlsx
func (s *Server) exportPayments(c *gin.Context) {
	payments, err := s.store.ListPayments(c.Request.Context())
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payments.", err)
		return
	}

	f, err := paymentsWorkbook(payments)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not build export.", err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("payments-%s.xlsx", s.now().Format(exportTimeLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		s.logger.Error("write export", "err", err)
	}
}

func paymentsWorkbook(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}

	for i, p := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{p.ID, p.Amount, p.Screenshot, p.Status, time.Unix(p.CreatedAt, 0).Format(time.DateTime)}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
