package detector

import "github.com/alejandrodnm/structscan/internal/domain"

// Resolución del sesgo de un order block por votación de tres métodos. La
// polaridad del fractal por sí sola no predice bien hacia dónde empuja el
// bloque: un fractal inferior dentro de un tramo al alza es alcista aunque
// los fractales inferiores parezcan bajistas en solitario.

// voteByStroke devuelve el sesgo del tramo que contiene temporalmente la
// vela, si existe. Es la señal más fiable de las tres.
func voteByStroke(candle domain.Bar, strokes []domain.Stroke) domain.Bias {
	for _, s := range strokes {
		if s.Covers(candle.Timestamp) {
			if s.Direction == domain.DirectionUp {
				return domain.BiasBullish
			}
			return domain.BiasBearish
		}
	}
	return domain.BiasNone
}

// voteByMovement vota según el cambio neto de precio sobre la ventana de
// velas posteriores a la vela del bloque: positivo → alcista, si no bajista.
// Se abstiene sin velas posteriores.
func voteByMovement(candle domain.Bar, subsequent []domain.Bar) domain.Bias {
	if len(subsequent) == 0 {
		return domain.BiasNone
	}
	net := subsequent[len(subsequent)-1].Close - candle.Close
	if net > 0 {
		return domain.BiasBullish
	}
	return domain.BiasBearish
}

// resolveBias cuenta los votos (las abstenciones no cuentan) y decide por
// mayoría. En empate aplica la precedencia fija documentada: primero el voto
// por tramo; si se abstuvo, el voto por desequilibrio, que nunca se abstiene.
func resolveBias(stroke, movement, imbalance domain.Bias) domain.Bias {
	var bullish, bearish int
	for _, v := range [...]domain.Bias{stroke, movement, imbalance} {
		switch v {
		case domain.BiasBullish:
			bullish++
		case domain.BiasBearish:
			bearish++
		}
	}
	switch {
	case bullish > bearish:
		return domain.BiasBullish
	case bearish > bullish:
		return domain.BiasBearish
	case stroke != domain.BiasNone:
		return stroke
	default:
		return imbalance
	}
}
