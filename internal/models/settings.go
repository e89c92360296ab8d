package models

// SettingsID is the primary key of the only settings row.
const SettingsID = 1

type Settings struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	UpiID        string  `gorm:"column:upi_id" json:"upi_id"` // payee VPA
	ReceiverName string  `json:"receiver_name"`
	LoanNumber   string  `json:"loan_number"`
	EmiAmount    float64 `json:"emi_amount"`
}

func (Settings) TableName() string { return "settings" }

// DefaultSettings is written on first startup.
func DefaultSettings() Settings {
	return Settings{
		ID:           SettingsID,
		UpiID:        "blackheart.in@ybl",
		ReceiverName: "PAYU MODE",
		LoanNumber:   "LN123456",
		EmiAmount:    2500.00,
	}
}
