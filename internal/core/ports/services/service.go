// Package services defines the service facades (ports) that handlers and
// sibling services depend on. Implementations live in core/services;
// substitutes in tests are compile-time-checked implementations of these
// interfaces, never ad-hoc stand-ins.
package services

// ServiceProvider bundles every service facade for handler registration.
type ServiceProvider struct {
	ChartSvc     ChartSvcFacade
	JournalSvc   JournalSvcFacade
	LedgerSvc    LedgerSvcFacade
	PeriodSvc    PeriodSvcFacade
	ClosingSvc   ClosingSvcFacade
	ReportingSvc ReportingSvcFacade
}
