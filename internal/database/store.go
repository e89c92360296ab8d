package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"venuspay-go/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Store wraps every query the application issues. Each method is a single
// statement (or a read followed by a single write) with no explicit transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	if err := s.db.WithContext(ctx).First(&settings, models.SettingsID).Error; err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings overwrites every field of the settings row, zero values included.
func (s *Store) UpdateSettings(ctx context.Context, in models.Settings) error {
	err := s.db.WithContext(ctx).
		Model(&models.Settings{}).
		Where("id = ?", models.SettingsID).
		Updates(map[string]any{
			"upi_id":        in.UpiID,
			"receiver_name": in.ReceiverName,
			"loan_number":   in.LoanNumber,
			"emi_amount":    in.EmiAmount,
		}).Error
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

func (s *Store) CreatePayment(ctx context.Context, amount float64, screenshot string) (*models.Payment, error) {
	p := &models.Payment{
		Amount:     amount,
		Screenshot: screenshot,
		Status:     models.StatusPending,
		CreatedAt:  time.Now().Unix(),
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

// ListPayments returns every payment, newest first.
func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).Order("id desc").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *Store) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return &p, nil
}

func (s *Store) PendingCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", models.StatusPending).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pending: %w", err)
	}
	return n, nil
}

// ApprovePayment moves a pending payment to Approved. It reports whether a row
// changed; unknown ids and already approved payments are not errors.
func (s *Store) ApprovePayment(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", models.StatusApproved)
	if res.Error != nil {
		return false, fmt.Errorf("approve payment %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeletePayment removes the row and returns it so the caller can clean up the
// stored screenshot. ErrPaymentNotFound is returned for unknown ids.
func (s *Store) DeletePayment(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Payment{}, id).Error; err != nil {
		return nil, fmt.Errorf("delete payment %d: %w", id, err)
	}
	return p, nil
}

type StatusTotal struct {
	Count  int64
	Amount float64
}

type Summary struct {
	Pending  StatusTotal
	Approved StatusTotal
}

func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var rows []struct {
		Status string
		Count  int64
		Amount float64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, fmt.Errorf("summarise payments: %w", err)
	}

	var sum Summary
	for _, r := range rows {
		switch r.Status {
		case models.StatusPending:
			sum.Pending = StatusTotal{Count: r.Count, Amount: r.Amount}
		case models.StatusApproved:
			sum.Approved = StatusTotal{Count: r.Count, Amount: r.Amount}
		}
	}
	return sum, nil
}
