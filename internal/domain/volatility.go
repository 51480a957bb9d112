package domain

import "math"

// AverageTrueRange calcula el ATR simple (media de true ranges) sobre las
// últimas period velas. Con menos velas que period devuelve la media del rango
// high-low de toda la secuencia.
//
// True range por vela: max(high−low, |high−prevClose|, |low−prevClose|).
// Precondición: al menos 2 velas; con la secuencia vacía devuelve 0.
func AverageTrueRange(bars []Bar, period int) float64 {
	if len(bars) == 0 {
		return 0
	}
	if len(bars) < period {
		sum := 0.0
		for _, b := range bars {
			sum += b.Range()
		}
		return sum / float64(len(bars))
	}

	recent := bars[len(bars)-period:]
	sum := 0.0
	count := 0
	for i := 1; i < len(recent); i++ {
		cur, prev := recent[i], recent[i-1]
		tr := math.Max(cur.Range(), math.Max(
			math.Abs(cur.High-prev.Close),
			math.Abs(cur.Low-prev.Close),
		))
		sum += tr
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AverageVolume calcula el volumen medio de las últimas period velas, o de
// toda la secuencia si hay menos. Devuelve 0 con la secuencia vacía.
func AverageVolume(bars []Bar, period int) float64 {
	if len(bars) == 0 {
		return 0
	}
	start := 0
	if len(bars) > period {
		start = len(bars) - period
	}
	sum := 0.0
	for _, b := range bars[start:] {
		sum += b.Volume
	}
	return sum / float64(len(bars)-start)
}
