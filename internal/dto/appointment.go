package dto

import (
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BookAppointmentRequest defines the data needed to book a slot.
// Fees are quoted server-side from the doctor's fee and the platform fee.
type BookAppointmentRequest struct {
	DoctorID      string    `json:"doctorID" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required,gtfield=StartTime"`
	PromotionCode *string   `json:"promotionCode"`
}

// CancelAppointmentRequest carries the optional cancellation reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// TransitionAppointmentRequest asks for a non-cancellation status change.
type TransitionAppointmentRequest struct {
	Status domain.AppointmentStatus `json:"status" binding:"required"`
	Reason string                   `json:"reason" binding:"max=500"`
}

// AvailabilityQuery bounds an availability lookup. Dates are calendar days
// in the clinic timezone, both inclusive.
type AvailabilityQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// SlotResponse is one open interval.
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityResponse lists a doctor's open intervals.
type AvailabilityResponse struct {
	DoctorID string         `json:"doctorID"`
	Slots    []SlotResponse `json:"slots"`
}

// AppointmentResponse defines the data returned for an appointment.
type AppointmentResponse struct {
	AppointmentID     string                   `json:"appointmentID"`
	PatientID         string                   `json:"patientID"`
	DoctorID          string                   `json:"doctorID"`
	StartTime         time.Time                `json:"startTime"`
	EndTime           time.Time                `json:"endTime"`
	Status            domain.AppointmentStatus `json:"status"`
	PaymentStatus     domain.PaymentStatus     `json:"paymentStatus"`
	ConsultationFee   decimal.Decimal          `json:"consultationFee"`
	PlatformFee       decimal.Decimal          `json:"platformFee"`
	DiscountAmount    decimal.Decimal          `json:"discountAmount"`
	TotalAmount       decimal.Decimal          `json:"totalAmount"`
	PromotionCode     *string                  `json:"promotionCode,omitempty"`
	RefundAmount      decimal.Decimal          `json:"refundAmount"`
	RefundStatus      domain.RefundStatus      `json:"refundStatus"`
	RefundProcessedAt *time.Time               `json:"refundProcessedAt,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	LastUpdatedAt     time.Time                `json:"lastUpdatedAt"`
}

// StatusEventResponse is one entry of an appointment's history.
type StatusEventResponse struct {
	EventID   string                    `json:"eventID"`
	OldStatus *domain.AppointmentStatus `json:"oldStatus"`
	NewStatus domain.AppointmentStatus  `json:"newStatus"`
	ChangedBy string                    `json:"changedBy"`
	ActorRole domain.ActorRole          `json:"actorRole"`
	Reason    string                    `json:"reason,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
}

// ToAppointmentResponse converts a domain.Appointment to AppointmentResponse DTO
func ToAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		AppointmentID:     a.AppointmentID,
		PatientID:         a.PatientID,
		DoctorID:          a.DoctorID,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		Status:            a.Status,
		PaymentStatus:     a.PaymentStatus,
		ConsultationFee:   a.ConsultationFee,
		PlatformFee:       a.PlatformFee,
		DiscountAmount:    a.DiscountAmount,
		TotalAmount:       a.TotalAmount,
		PromotionCode:     a.PromotionCode,
		RefundAmount:      a.RefundAmount,
		RefundStatus:      a.RefundStatus,
		RefundProcessedAt: a.RefundProcessedAt,
		CreatedAt:         a.CreatedAt,
		LastUpdatedAt:     a.LastUpdatedAt,
	}
}

// ToStatusEventResponses converts an event chain to response DTOs
func ToStatusEventResponses(events []domain.AppointmentStatusEvent) []StatusEventResponse {
	responses := make([]StatusEventResponse, len(events))
	for i, ev := range events {
		responses[i] = StatusEventResponse{
			EventID:   ev.EventID,
			OldStatus: ev.OldStatus,
			NewStatus: ev.NewStatus,
			ChangedBy: ev.ChangedBy,
			ActorRole: ev.ActorRole,
			Reason:    ev.Reason,
			CreatedAt: ev.CreatedAt,
		}
	}
	return responses
}
