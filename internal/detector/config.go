package detector

import "fmt"

// Defaults del detector. Documentados también en config/config.yaml.
const (
	defaultMinATRMultiple = 1.0
	defaultMinVolumeRatio = 1.2
	defaultMaxTimeBars    = 10
	defaultFXLookback     = 20
	defaultFXMinStrength  = 3
	defaultBILookback     = 10
)

// Config son las opciones del detector. Es inmutable una vez construido el
// Detector: se valida y normaliza una sola vez, nunca por llamada.
type Config struct {
	// MinATRMultiple es el múltiplo mínimo de ATR que debe alcanzar la
	// distancia de ruptura para que el evento se emita. Default 1.0.
	MinATRMultiple float64

	// MinVolumeRatio multiplica el volumen medio para formar el umbral de
	// confirmación por volumen. Default 1.2.
	MinVolumeRatio float64

	// MaxTimeBars es la base de normalización de la eficiencia temporal de
	// las rupturas por tramo. Default 10.
	MaxTimeBars int

	// FXLookback acota cuántos fractales previos considerar. Default 20.
	// Actualmente orientativo: el resolver corta en el primer candidato.
	FXLookback int

	// FXMinStrength es el número mínimo de velas constituyentes para que un
	// fractal cuente como momentum alineado. Default 3.
	FXMinStrength int

	// BILookback acota cuántos tramos previos considerar. Default 10.
	// Orientativo, como FXLookback.
	BILookback int

	// BIMinPower es la potencia de precio mínima de un tramo para contar
	// como momentum alineado. Default 0.0 (siempre alineado).
	BIMinPower float64

	// CHOCHMomentumRequired y CHOCHInternalStructureRequired se aceptan por
	// compatibilidad pero el clasificador actual no los consulta.
	CHOCHMomentumRequired          bool
	CHOCHInternalStructureRequired bool
}

// DefaultConfig devuelve la configuración documentada por defecto.
func DefaultConfig() Config {
	return Config{
		MinATRMultiple: defaultMinATRMultiple,
		MinVolumeRatio: defaultMinVolumeRatio,
		MaxTimeBars:    defaultMaxTimeBars,
		FXLookback:     defaultFXLookback,
		FXMinStrength:  defaultFXMinStrength,
		BILookback:     defaultBILookback,
		BIMinPower:     0.0,
	}
}

// Validate comprueba que ningún parámetro sea negativo.
func (c Config) Validate() error {
	if c.MinATRMultiple < 0 {
		return fmt.Errorf("min_atr_multiple negativo: %v", c.MinATRMultiple)
	}
	if c.MinVolumeRatio < 0 {
		return fmt.Errorf("min_volume_ratio negativo: %v", c.MinVolumeRatio)
	}
	if c.MaxTimeBars < 0 {
		return fmt.Errorf("max_time_bars negativo: %d", c.MaxTimeBars)
	}
	if c.FXLookback < 0 {
		return fmt.Errorf("fx_lookback negativo: %d", c.FXLookback)
	}
	if c.FXMinStrength < 0 {
		return fmt.Errorf("fx_min_strength negativo: %d", c.FXMinStrength)
	}
	if c.BILookback < 0 {
		return fmt.Errorf("bi_lookback negativo: %d", c.BILookback)
	}
	return nil
}

// withDefaults sustituye los valores cero por los defaults documentados.
// BIMinPower queda tal cual: su default es 0.
func (c Config) withDefaults() Config {
	if c.MinATRMultiple == 0 {
		c.MinATRMultiple = defaultMinATRMultiple
	}
	if c.MinVolumeRatio == 0 {
		c.MinVolumeRatio = defaultMinVolumeRatio
	}
	if c.MaxTimeBars == 0 {
		c.MaxTimeBars = defaultMaxTimeBars
	}
	if c.FXLookback == 0 {
		c.FXLookback = defaultFXLookback
	}
	if c.FXMinStrength == 0 {
		c.FXMinStrength = defaultFXMinStrength
	}
	if c.BILookback == 0 {
		c.BILookback = defaultBILookback
	}
	return c
}
