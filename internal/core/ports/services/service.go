package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Availability AvailabilitySvc
	Ledger       LedgerSvcFacade
	Appointment  AppointmentSvcFacade
	Booking      BookingSvc
	Cancellation CancellationSvc
	Withdrawal   WithdrawalSvcFacade
	TopUp        TopUpSvc
	DoctorStats  DoctorStatsSvc
}
