package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"venuspay-go/internal/database"
	"venuspay-go/internal/metrics"
	"venuspay-go/internal/models"
	"venuspay-go/internal/storage"
)

type adminPage struct {
	Settings     models.Settings
	Payments     []models.Payment
	PendingCount int64
	Summary      database.Summary
}

// GET /admin
func (s *Server) adminHome(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load settings.", err)
		return
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payments.", err)
		return
	}
	pending, err := s.store.PendingCount(ctx)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payments.", err)
		return
	}
	summary, err := s.store.Summary(ctx)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payments.", err)
		return
	}

	c.HTML(http.StatusOK, "admin.html", adminPage{
		Settings:     settings,
		Payments:     payments,
		PendingCount: pending,
		Summary:      summary,
	})
}

// POST /admin
func (s *Server) updateSettings(c *gin.Context) {
	in := models.Settings{
		UpiID:        strings.TrimSpace(c.PostForm("upi_id")),
		ReceiverName: strings.TrimSpace(c.PostForm("receiver_name")),
		LoanNumber:   strings.TrimSpace(c.PostForm("loan_number")),
		EmiAmount:    parseAmount(c.PostForm("emi_amount")),
	}
	if err := s.store.UpdateSettings(c.Request.Context(), in); err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not save settings.", err)
		return
	}
	s.logger.Info("settings updated", "upi_id", in.UpiID, "loan_number", in.LoanNumber, "emi_amount", in.EmiAmount)
	c.Redirect(http.StatusFound, "/admin")
}

// paymentID parses the :id route parameter. ok is false for anything that
// cannot name a row.
func paymentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GET /admin/approve/:id
func (s *Server) approvePayment(c *gin.Context) {
	if id, ok := paymentID(c); ok {
		changed, err := s.store.ApprovePayment(c.Request.Context(), id)
		switch {
		case err != nil:
			s.logger.Error("approve payment", "id", id, "err", err)
		case changed:
			metrics.PaymentsApproved.Inc()
			s.logger.Info("payment approved", "id", id)
		}
	}
	c.Redirect(http.StatusFound, "/admin")
}

// GET /admin/delete/:id
func (s *Server) deletePayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	ctx := c.Request.Context()
	p, err := s.store.DeletePayment(ctx, id)
	switch {
	case errors.Is(err, database.ErrPaymentNotFound):
	case err != nil:
		s.logger.Error("delete payment", "id", id, "err", err)
	default:
		metrics.PaymentsDeleted.Inc()
		s.logger.Info("payment deleted", "id", id)
		if p.Screenshot != "" {
			if err := s.files.Remove(ctx, p.Screenshot); err != nil && !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("remove screenshot", "name", p.Screenshot, "err", err)
			}
		}
	}
	c.Redirect(http.StatusFound, "/admin")
}

// GET /admin/pending_count
func (s *Server) pendingCount(c *gin.Context) {
	n, err := s.store.PendingCount(c.Request.Context())
	if err != nil {
		s.logger.Error("count pending", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": n})
}
