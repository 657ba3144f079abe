package domain

import "context"

// ServicePort defines the read contract for quakes
type ServicePort interface {
	List(ctx context.Context, in ListInput) (ListResponse, error)
	Get(ctx context.Context, id string) (Earthquake, error)
}
