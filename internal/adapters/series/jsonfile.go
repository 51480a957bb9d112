package series

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// FileProvider implementa ports.SeriesProvider leyendo el documento JSON que
// exporta la etapa de descomposición estructural.
type FileProvider struct {
	path string
}

// NewFileProvider crea un proveedor sobre la ruta dada.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Load lee y mapea el documento completo a tipos de dominio.
func (p *FileProvider) Load(_ context.Context) (domain.Series, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return domain.Series{}, fmt.Errorf("series.Load: read %q: %w", p.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Series{}, fmt.Errorf("series.Load: parse %q: %w", p.path, err)
	}

	s, err := mapSeries(doc)
	if err != nil {
		return domain.Series{}, fmt.Errorf("series.Load: map %q: %w", p.path, err)
	}
	return s, nil
}
