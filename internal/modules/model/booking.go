package model

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"type:text;not null" json:"fullName"`
	Telephone string    `gorm:"type:text;not null" json:"telephone"`
	// Email is stored lower-cased; together with BookingDay it is unique.
	Email       string  `gorm:"type:text;not null;index;uniqueIndex:idx_bookings_email_day,priority:1" json:"email"`
	ReceiptPath *string `gorm:"type:text" json:"receiptPath"`

	EarlyBirdConfirmed         bool `gorm:"not null;default:false" json:"earlyBirdConfirmed"`
	CancellationPolicyAccepted bool `gorm:"not null;default:false" json:"cancellationPolicyAccepted"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
	// BookingDay is the server-local calendar day of CreatedAt.
	BookingDay time.Time `gorm:"type:date;not null;uniqueIndex:idx_bookings_email_day,priority:2" json:"-"`
}

func (Booking) TableName() string { return "bookings" }

// HasReceipt reports whether a payment receipt has been attached.
func (b *Booking) HasReceipt() bool {
	return b.ReceiptPath != nil && *b.ReceiptPath != ""
}
