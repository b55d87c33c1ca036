package lead

import "time"

// Source records which flow produced a lead.
type Source string

const (
	SourceAPI          Source = "api"
	SourceAvailNow     Source = "avail_now"
	SourceConsultation Source = "consultation"
	SourceTerminal     Source = "terminal"
)

// Lead is a prospective customer's submitted contact and selection data.
// Prices are snapshotted at submission time.
type Lead struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"publicId"`

	FullName      string `gorm:"not null" json:"fullName"`
	Email         string `gorm:"not null;index" json:"email"`
	ContactNumber string `json:"contactNumber"`

	Tier         string   `gorm:"not null;index" json:"tier"`
	AddOns       []string `gorm:"type:text;serializer:json" json:"addOns"`
	BillingCycle string   `json:"billingCycle"`
	IsRush       bool     `json:"isRush"`
	TotalCost    int64    `json:"totalCost"`
	MonthlyFee   int64    `json:"monthlyFee"`
	ReferralCode string   `json:"referralCode"`

	ConsultationTimestamp *time.Time `json:"consultation_timestamp,omitempty"`

	Source    Source    `gorm:"type:varchar(32);index" json:"source"`
	IPAddress string    `json:"-"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

// HasConsultation reports whether the lead booked a consultation slot.
func (l *Lead) HasConsultation() bool {
	return l.ConsultationTimestamp != nil
}
