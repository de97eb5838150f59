package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Timeline(ctx context.Context, in TimelineInput) (TimelineOut, error)
	Search(ctx context.Context, in SearchInput) (SearchOut, error)
}
