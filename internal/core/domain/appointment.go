package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks whether the appointment has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// RefundStatus tracks refund processing for a cancelled appointment.
type RefundStatus string

const (
	RefundNotApplicable RefundStatus = "NOT_APPLICABLE"
	RefundRefunded      RefundStatus = "REFUNDED"
)

// FeeBreakdown is what the patient is asked to pay for a booking.
type FeeBreakdown struct {
	ConsultationFee decimal.Decimal `json:"consultationFee"`
	PlatformFee     decimal.Decimal `json:"platformFee"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
}

// Total is consultation + platform - discount, never below zero.
func (f FeeBreakdown) Total() decimal.Decimal {
	total := f.ConsultationFee.Add(f.PlatformFee).Sub(f.DiscountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Appointment is a booked consultation. It is created by the booking
// coordinator and its status only ever changes through a recorded transition.
type Appointment struct {
	AppointmentID     string            `json:"appointmentID"`
	PatientID         string            `json:"patientID"`
	DoctorID          string            `json:"doctorID"`
	StartTime         time.Time         `json:"startTime"`
	EndTime           time.Time         `json:"endTime"`
	Status            AppointmentStatus `json:"status"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	ConsultationFee   decimal.Decimal   `json:"consultationFee"`
	PlatformFee       decimal.Decimal   `json:"platformFee"`
	DiscountAmount    decimal.Decimal   `json:"discountAmount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	PromotionCode     *string           `json:"promotionCode,omitempty"`
	RefundAmount      decimal.Decimal   `json:"refundAmount"`
	RefundStatus      RefundStatus      `json:"refundStatus"`
	RefundProcessedAt *time.Time        `json:"refundProcessedAt,omitempty"`
	AuditFields
}

// Slot returns the appointment's half-open interval.
func (a Appointment) Slot() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// AppointmentStatusEvent is one row of the append-only appointment audit log.
type AppointmentStatusEvent struct {
	EventID       string             `json:"eventID"`
	AppointmentID string             `json:"appointmentID"`
	OldStatus     *AppointmentStatus `json:"oldStatus,omitempty"`
	NewStatus     AppointmentStatus  `json:"newStatus"`
	ChangedBy     string             `json:"changedBy"`
	ActorRole     ActorRole          `json:"actorRole"`
	Reason        string             `json:"reason"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ValidateHistory checks that an ordered event chain starts from nothing,
// links each event's old status to the previous new status, and never leaves
// a terminal status.
func ValidateHistory(events []AppointmentStatusEvent) bool {
	var prev *AppointmentStatus
	for i, ev := range events {
		if i == 0 {
			if ev.OldStatus != nil {
				return false
			}
		} else {
			if ev.OldStatus == nil || *ev.OldStatus != *prev {
				return false
			}
			if prev.IsTerminal() {
				return false
			}
		}
		status := ev.NewStatus
		prev = &status
	}
	return true
}
