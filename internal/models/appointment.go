package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is a row of the appointments table.
type Appointment struct {
	AppointmentID     string          `db:"appointment_id"`
	PatientID         string          `db:"patient_id"`
	DoctorID          string          `db:"doctor_id"`
	StartTime         time.Time       `db:"start_time"`
	EndTime           time.Time       `db:"end_time"`
	Status            string          `db:"status"`
	PaymentStatus     string          `db:"payment_status"`
	ConsultationFee   decimal.Decimal `db:"consultation_fee"`
	PlatformFee       decimal.Decimal `db:"platform_fee"`
	DiscountAmount    decimal.Decimal `db:"discount_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PromotionCode     *string         `db:"promotion_code"`
	RefundAmount      decimal.Decimal `db:"refund_amount"`
	RefundStatus      string          `db:"refund_status"`
	RefundProcessedAt *time.Time      `db:"refund_processed_at"`
	AuditFields
}

// AppointmentStatusEvent is a row of appointment_status_events.
type AppointmentStatusEvent struct {
	EventID       string    `db:"event_id"`
	AppointmentID string    `db:"appointment_id"`
	OldStatus     *string   `db:"old_status"`
	NewStatus     string    `db:"new_status"`
	ChangedBy     string    `db:"changed_by"`
	ActorRole     string    `db:"actor_role"`
	Reason        *string   `db:"reason"`
	CreatedAt     time.Time `db:"created_at"`
}
