package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// Storage persiste los resultados de cada pasada de detección.
type Storage interface {
	// SavePass persiste la pasada completa: resumen, rupturas y bloques.
	SavePass(ctx context.Context, pass domain.Pass) error

	// History devuelve las proyecciones de rupturas registradas en el rango
	// de tiempo dado, ordenadas por timestamp.
	History(ctx context.Context, from, to time.Time) ([]domain.BreakRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
