package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	DoctorRepo       DoctorRepositoryFacade
	AvailabilityRepo AvailabilityReader
	AppointmentRepo  AppointmentRepositoryFacade
	WalletRepo       WalletRepositoryFacade
	WithdrawalRepo   WithdrawalRepositoryFacade
	PaymentRepo      PaymentOrderRepositoryFacade
	PromotionRepo    PromotionRepositoryFacade
	SettingsRepo     SettingsReader
}
