package domain

import "time"

// ConfirmationThreshold es el umbral fijo de confirmación: una ruptura con
// conviction ≥ 0.7 se considera confirmada. No es configurable en el detector
// base; valor calibrado empíricamente.
const ConfirmationThreshold = 0.7

// timeEfficiencyBaseHours es la base de normalización temporal: una ruptura
// que tarda 240 horas o más en producirse puntúa 0.
const timeEfficiencyBaseHours = 240.0

// ConvictionScore combina los tres factores de confirmación en un score 0-1.
//
// Fórmula: media de
//   - 1.0 si el volumen confirma, si no 0.5
//   - timeEfficiency
//   - 1.0 si el momentum está alineado, si no 0.7
func ConvictionScore(volumeConfirmed bool, timeEfficiency float64, momentumAligned bool) float64 {
	vol := 0.5
	if volumeConfirmed {
		vol = 1.0
	}
	mom := 0.7
	if momentumAligned {
		mom = 1.0
	}
	return (vol + timeEfficiency + mom) / 3.0
}

// FalseBreakProbability devuelve la probabilidad estimada de ruptura falsa:
// max(0, 1 − conviction).
func FalseBreakProbability(conviction float64) float64 {
	p := 1.0 - conviction
	if p < 0 {
		return 0
	}
	return p
}

// FollowThroughPotential estima el potencial de continuación tras la ruptura:
// 0.8×conviction + 0.2×timeEfficiency.
func FollowThroughPotential(conviction, timeEfficiency float64) float64 {
	return conviction*0.8 + timeEfficiency*0.2
}

// TimeEfficiencyHours puntúa la velocidad de una ruptura por fractal:
// max(0, 1 − horas/240). Rupturas más rápidas puntúan más alto.
func TimeEfficiencyHours(span time.Duration) float64 {
	eff := 1.0 - span.Hours()/timeEfficiencyBaseHours
	if eff < 0 {
		return 0
	}
	return eff
}

// TimeEfficiencyBars puntúa la eficiencia de un tramo por su longitud:
// min(1, length/maxBars). Tramos más desarrollados respecto a la base
// configurada puntúan más alto, con tope en 1.
func TimeEfficiencyBars(length, maxBars int) float64 {
	if maxBars <= 0 {
		return 0
	}
	eff := float64(length) / float64(maxBars)
	if eff > 1 {
		return 1
	}
	return eff
}

// Confirmed informa si un conviction score alcanza el umbral fijo.
func Confirmed(conviction float64) bool {
	return conviction >= ConfirmationThreshold
}
