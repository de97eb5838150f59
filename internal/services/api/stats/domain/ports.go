package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Persons(ctx context.Context, in StatsQuery) (PersonsOut, error)
	Report(ctx context.Context, in StatsQuery) (ReportOut, error)
}
