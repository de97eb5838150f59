package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Teams(ctx context.Context) ([]TeamRow, error)
	Territories(ctx context.Context) ([]TerritoryRow, error)
}
