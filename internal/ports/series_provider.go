package ports

import (
	"context"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// SeriesProvider entrega una serie ya descompuesta (velas, fractales y
// tramos) producida por la etapa de descomposición aguas arriba.
type SeriesProvider interface {
	Load(ctx context.Context) (domain.Series, error)
}
