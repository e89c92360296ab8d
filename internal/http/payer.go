package http

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"venuspay-go/internal/metrics"
	"venuspay-go/internal/models"
	"venuspay-go/internal/storage"
	"venuspay-go/internal/upi"
)

const (
	msgInvalidAmount   = "❌ Invalid amount."
	msgMissingFile     = "❌ Please upload screenshot."
	msgFileTooLarge    = "❌ Screenshot too large."
	msgSaveFailed      = "❌ Could not save payment. Please try again."
	msgSubmittedFormat = "✅ ₹%s payment submitted successfully. Awaiting approval."

	qrSize = 180

	// multipartOverhead is allowed on top of the screenshot size for the
	// amount field, part headers and boundaries.
	multipartOverhead = 1 << 20
)

type indexPage struct {
	Settings   models.Settings
	Message    string
	MessageOK  bool
	EmiDue     bool
	DeepLink   template.URL
	NotePrefix string
}

// parseAmount reads a decimal form value. Anything unparseable or not finite
// counts as zero.
func parseAmount(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func payee(s models.Settings) upi.Payee {
	return upi.Payee{UpiID: s.UpiID, ReceiverName: s.ReceiverName, LoanNumber: s.LoanNumber}
}

func (s *Server) renderIndex(c *gin.Context, code int, settings models.Settings, msg string, ok bool) {
	c.HTML(code, "index.html", indexPage{
		Settings:   settings,
		Message:    msg,
		MessageOK:  ok,
		EmiDue:     true,
		DeepLink:   template.URL(upi.DeepLink(payee(settings), settings.EmiAmount)),
		NotePrefix: upi.NotePrefix,
	})
}

// GET /
func (s *Server) index(c *gin.Context) {
	settings, err := s.store.GetSettings(c.Request.Context())
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payment details.", err)
		return
	}
	s.renderIndex(c, http.StatusOK, settings, "", false)
}

// POST /
func (s *Server) submitPayment(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Could not load payment details.", err)
		return
	}

	limit := s.cfg.MaxUploadBytes()
	if c.Request.ContentLength > limit+multipartOverhead {
		s.renderIndex(c, http.StatusRequestEntityTooLarge, settings, msgFileTooLarge, false)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	// Other parse errors surface through the field checks below.
	var tooLarge *http.MaxBytesError
	if err := c.Request.ParseMultipartForm(limit); errors.As(err, &tooLarge) {
		s.renderIndex(c, http.StatusRequestEntityTooLarge, settings, msgFileTooLarge, false)
		return
	}

	amount := parseAmount(c.PostForm("amount"))
	if amount <= 0 {
		s.renderIndex(c, http.StatusBadRequest, settings, msgInvalidAmount, false)
		return
	}

	fh, err := c.FormFile("screenshot")
	if err != nil || fh.Filename == "" {
		s.renderIndex(c, http.StatusBadRequest, settings, msgMissingFile, false)
		return
	}
	if fh.Size > s.cfg.MaxUploadBytes() {
		s.renderIndex(c, http.StatusRequestEntityTooLarge, settings, msgFileTooLarge, false)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("open upload", "err", err)
		s.renderIndex(c, http.StatusInternalServerError, settings, msgSaveFailed, false)
		return
	}
	defer f.Close()

	name := storage.UploadName(s.now(), fh.Filename)
	if err := s.files.Save(ctx, name, f, fh.Size); err != nil {
		s.logger.Error("save screenshot", "name", name, "err", err)
		s.renderIndex(c, http.StatusInternalServerError, settings, msgSaveFailed, false)
		return
	}

	// The file stays behind if the insert fails; it is not referenced by any row.
	p, err := s.store.CreatePayment(ctx, amount, name)
	if err != nil {
		s.logger.Error("record payment", "screenshot", name, "err", err)
		s.renderIndex(c, http.StatusInternalServerError, settings, msgSaveFailed, false)
		return
	}

	metrics.PaymentsSubmitted.Inc()
	s.logger.Info("payment submitted", "id", p.ID, "amount", p.Amount, "screenshot", name)
	s.renderIndex(c, http.StatusOK, settings, fmt.Sprintf(msgSubmittedFormat, upi.FormatAmount(amount)), true)
}

// GET /uploads/:filename
func (s *Server) serveUpload(c *gin.Context) {
	obj, err := s.files.Open(c.Request.Context(), c.Param("filename"))
	if errors.Is(err, storage.ErrNotFound) {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	if err != nil {
		s.logger.Error("open screenshot", "name", c.Param("filename"), "err", err)
		c.String(http.StatusInternalServerError, "could not read file")
		return
	}
	defer obj.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
}

// GET /qr.png?amount=
func (s *Server) qrCode(c *gin.Context) {
	settings, err := s.store.GetSettings(c.Request.Context())
	if err != nil {
		s.logger.Error("load settings", "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	amount := parseAmount(c.Query("amount"))
	if amount <= 0 {
		amount = settings.EmiAmount
	}

	png, err := upi.QRCode(upi.DeepLink(payee(settings), amount), qrSize)
	if err != nil {
		s.logger.Error("render qr", "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
