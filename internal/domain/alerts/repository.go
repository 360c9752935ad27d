package alerts

import "context"

// Repository es el backend de alertas.
type Repository interface {
	List(ctx context.Context) ([]Alert, error)
	MarkRead(ctx context.Context, id string) error
}

// Snapshot es la copia local de las alertas (la llena el refresh).
type Snapshot interface {
	Alerts() []Alert
}

type Refresher interface {
	Refresh(ctx context.Context)
}
