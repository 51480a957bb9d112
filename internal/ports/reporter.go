package ports

import (
	"context"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// Reporter presenta los eventos detectados en una pasada.
type Reporter interface {
	// Report muestra o exporta los eventos de la pasada, ya ordenados por
	// timestamp.
	Report(ctx context.Context, pass domain.Pass) error
}
