package domain

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	StatusPendingConfirmation AppointmentStatus = "PENDING_CONFIRMATION"
	StatusConfirmed           AppointmentStatus = "CONFIRMED"
	StatusBeforeAppointment   AppointmentStatus = "BEFORE_APPOINTMENT"
	StatusOnProgressing       AppointmentStatus = "ON_PROGRESSING"
	StatusCompleted           AppointmentStatus = "COMPLETED"
	StatusCancelledByPatient  AppointmentStatus = "CANCELLED_BY_PATIENT"
	StatusCancelledByDoctor   AppointmentStatus = "CANCELLED_BY_DOCTOR"
	StatusMissedByPatient     AppointmentStatus = "MISSED_BY_PATIENT"
	StatusMissedByDoctor      AppointmentStatus = "MISSED_BY_DOCTOR"
	StatusNoShow              AppointmentStatus = "NO_SHOW"
)

var allStatuses = []AppointmentStatus{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusBeforeAppointment,
	StatusOnProgressing,
	StatusCompleted,
	StatusCancelledByPatient,
	StatusCancelledByDoctor,
	StatusMissedByPatient,
	StatusMissedByDoctor,
	StatusNoShow,
}

// AllStatuses returns every appointment status.
func AllStatuses() []AppointmentStatus {
	out := make([]AppointmentStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal from s.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelledByPatient, StatusCancelledByDoctor,
		StatusMissedByPatient, StatusMissedByDoctor, StatusNoShow:
		return true
	}
	return false
}

// HoldsSlot reports whether an appointment in status s still occupies its
// doctor's time. Cancelled and no-show appointments free the slot.
func (s AppointmentStatus) HoldsSlot() bool {
	switch s {
	case StatusCancelledByPatient, StatusCancelledByDoctor, StatusNoShow:
		return false
	}
	return true
}

// ReleasedStatuses lists statuses that do not hold a slot.
func ReleasedStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusCancelledByPatient, StatusCancelledByDoctor, StatusNoShow}
}

type transitionKey struct {
	from AppointmentStatus
	role ActorRole
}

func set(statuses ...AppointmentStatus) map[AppointmentStatus]struct{} {
	m := make(map[AppointmentStatus]struct{}, len(statuses))
	for _, s := range statuses {
		m[s] = struct{}{}
	}
	return m
}

// transitions is the allow-list: (current status, actor role) → next statuses.
// Terminal statuses have no entries.
var transitions = map[transitionKey]map[AppointmentStatus]struct{}{
	{StatusPendingConfirmation, RolePatient}: set(StatusCancelledByPatient),
	{StatusPendingConfirmation, RoleDoctor}:  set(StatusConfirmed, StatusCancelledByDoctor),
	{StatusPendingConfirmation, RoleSystem}:  set(StatusConfirmed, StatusCancelledByDoctor, StatusNoShow),
	{StatusPendingConfirmation, RoleAdmin}:   set(StatusConfirmed, StatusCancelledByPatient, StatusCancelledByDoctor),

	{StatusConfirmed, RolePatient}: set(StatusCancelledByPatient),
	{StatusConfirmed, RoleDoctor}:  set(StatusBeforeAppointment, StatusCancelledByDoctor),
	{StatusConfirmed, RoleSystem}:  set(StatusBeforeAppointment, StatusCancelledByDoctor, StatusMissedByPatient, StatusMissedByDoctor, StatusNoShow),
	{StatusConfirmed, RoleAdmin}:   set(StatusBeforeAppointment, StatusCancelledByPatient, StatusCancelledByDoctor, StatusMissedByPatient, StatusMissedByDoctor, StatusNoShow),

	{StatusBeforeAppointment, RolePatient}: set(StatusCancelledByPatient),
	{StatusBeforeAppointment, RoleDoctor}:  set(StatusOnProgressing, StatusCancelledByDoctor),
	{StatusBeforeAppointment, RoleSystem}:  set(StatusOnProgressing, StatusCancelledByDoctor, StatusMissedByPatient, StatusMissedByDoctor, StatusNoShow),
	{StatusBeforeAppointment, RoleAdmin}:   set(StatusOnProgressing, StatusCancelledByPatient, StatusCancelledByDoctor, StatusMissedByPatient, StatusMissedByDoctor, StatusNoShow),

	{StatusOnProgressing, RoleDoctor}: set(StatusCompleted),
	{StatusOnProgressing, RoleSystem}: set(StatusCompleted, StatusMissedByPatient, StatusMissedByDoctor),
	{StatusOnProgressing, RoleAdmin}:  set(StatusCompleted, StatusMissedByPatient, StatusMissedByDoctor),
}

// CanTransition reports whether role may move an appointment from → to.
func CanTransition(from, to AppointmentStatus, role ActorRole) bool {
	if from.IsTerminal() || !to.Valid() {
		return false
	}
	_, ok := transitions[transitionKey{from, role}][to]
	return ok
}

// AllowedNext lists the statuses role may move to from the current status.
func AllowedNext(from AppointmentStatus, role ActorRole) []AppointmentStatus {
	allowed := transitions[transitionKey{from, role}]
	var out []AppointmentStatus
	for _, s := range allStatuses {
		if _, ok := allowed[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// CancelStatusFor returns the cancellation status recorded for a cancel
// initiated by role. System and admin cancellations are attributed to the
// doctor side since the patient did not ask for them.
func CancelStatusFor(role ActorRole) AppointmentStatus {
	if role == RolePatient {
		return StatusCancelledByPatient
	}
	return StatusCancelledByDoctor
}
