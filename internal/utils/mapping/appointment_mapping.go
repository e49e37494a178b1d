package mapping

import (
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/models"
)

// ToModelAppointment converts a domain Appointment to a model Appointment
func ToModelAppointment(d domain.Appointment) models.Appointment {
	return models.Appointment{
		AppointmentID:     d.AppointmentID,
		PatientID:         d.PatientID,
		DoctorID:          d.DoctorID,
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
		Status:            string(d.Status),
		PaymentStatus:     string(d.PaymentStatus),
		ConsultationFee:   d.ConsultationFee,
		PlatformFee:       d.PlatformFee,
		DiscountAmount:    d.DiscountAmount,
		TotalAmount:       d.TotalAmount,
		PromotionCode:     d.PromotionCode,
		RefundAmount:      d.RefundAmount,
		RefundStatus:      string(d.RefundStatus),
		RefundProcessedAt: d.RefundProcessedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAppointment converts a model Appointment to a domain Appointment
func ToDomainAppointment(m models.Appointment) domain.Appointment {
	return domain.Appointment{
		AppointmentID:     m.AppointmentID,
		PatientID:         m.PatientID,
		DoctorID:          m.DoctorID,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		Status:            domain.AppointmentStatus(m.Status),
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		ConsultationFee:   m.ConsultationFee,
		PlatformFee:       m.PlatformFee,
		DiscountAmount:    m.DiscountAmount,
		TotalAmount:       m.TotalAmount,
		PromotionCode:     m.PromotionCode,
		RefundAmount:      m.RefundAmount,
		RefundStatus:      domain.RefundStatus(m.RefundStatus),
		RefundProcessedAt: m.RefundProcessedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStatusEvent converts a domain status event to its row
func ToModelStatusEvent(d domain.AppointmentStatusEvent) models.AppointmentStatusEvent {
	var old *string
	if d.OldStatus != nil {
		s := string(*d.OldStatus)
		old = &s
	}
	return models.AppointmentStatusEvent{
		EventID:       d.EventID,
		AppointmentID: d.AppointmentID,
		OldStatus:     old,
		NewStatus:     string(d.NewStatus),
		ChangedBy:     d.ChangedBy,
		ActorRole:     string(d.ActorRole),
		Reason:        optionalString(d.Reason),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainStatusEvent converts a status event row to its domain form
func ToDomainStatusEvent(m models.AppointmentStatusEvent) domain.AppointmentStatusEvent {
	var old *domain.AppointmentStatus
	if m.OldStatus != nil {
		s := domain.AppointmentStatus(*m.OldStatus)
		old = &s
	}
	return domain.AppointmentStatusEvent{
		EventID:       m.EventID,
		AppointmentID: m.AppointmentID,
		OldStatus:     old,
		NewStatus:     domain.AppointmentStatus(m.NewStatus),
		ChangedBy:     m.ChangedBy,
		ActorRole:     domain.ActorRole(m.ActorRole),
		Reason:        derefString(m.Reason),
		CreatedAt:     m.CreatedAt,
	}
}
