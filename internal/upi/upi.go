// Package upi builds UPI payment deep links and renders them as QR codes.
package upi

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const Currency = "INR"

// NotePrefix is prepended to the loan number in the transaction note.
const NotePrefix = "Loan EMI - "

type Payee struct {
	UpiID        string
	ReceiverName string
	LoanNumber   string
}

// DeepLink returns the upi://pay URI for amount. Escaping follows
// encodeURIComponent and the amount follows toFixed(2), so the link matches
// the one the payer page builds in the browser.
func DeepLink(p Payee, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s&tn=%s",
		EncodeURIComponent(p.UpiID),
		EncodeURIComponent(p.ReceiverName),
		FormatAmount(amount),
		Currency,
		EncodeURIComponent(NotePrefix+p.LoanNumber),
	)
}

// QRCode renders link as a PNG of size x size pixels.
func QRCode(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// FormatAmount renders amount with two decimals the way JavaScript's
// toFixed(2) does: the exact binary value is rounded, and a tie rounds away
// from zero (100.125 gives "100.13" where %.2f gives "100.12").
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%.2f", amount)
	}

	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(amount))
	x.Mul(x, big.NewFloat(100))
	cents, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetInt(cents))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		cents.Add(cents, big.NewInt(1))
	}

	digits := cents.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if amount < 0 {
		out = "-" + out
	}
	return out
}

const upperhex = "0123456789ABCDEF"

func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
