package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Users    UserRepository
	Products ProductRepository
	Entries  InventoryEntryRepository
	Sales    SaleRepository
	Audits   AuditRepository
	Billing  BillingRepository
}
