package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// ActorRole identifies who is driving a state change.
type ActorRole string

const (
	RolePatient ActorRole = "PATIENT"
	RoleDoctor  ActorRole = "DOCTOR"
	RoleAdmin   ActorRole = "ADMIN"
	RoleSystem  ActorRole = "SYSTEM"
)

// Valid reports whether r is a known role.
func (r ActorRole) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin, RoleSystem:
		return true
	}
	return false
}
