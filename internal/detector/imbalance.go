package detector

import (
	"iter"

	"github.com/alejandrodnm/structscan/internal/domain"
)

const (
	// imbalanceSearchLimit acota cuántas velas tras el inicio del fractal se
	// exploran buscando el patrón. Valor calibrado empíricamente.
	imbalanceSearchLimit = 20

	// movementWindowBars es la ventana de velas posteriores que consulta el
	// voto por movimiento.
	movementWindowBars = 10
)

// imbalances devuelve la secuencia perezosa de candidatos de desequilibrio
// sobre la ventana deslizante de tres velas que empieza en offset: pares
// (índice de la primera vela del triple, sesgo del hueco). Un hueco alcista
// existe cuando el high de la primera vela queda estrictamente por debajo del
// low de la tercera; el bajista es el espejo. Finita y reiniciable desde
// cualquier offset.
func imbalances(bars []domain.Bar, offset int) iter.Seq2[int, domain.Bias] {
	return func(yield func(int, domain.Bias) bool) {
		for i := offset; i+2 < len(bars); i++ {
			first, third := bars[i], bars[i+2]
			var bias domain.Bias
			switch {
			case first.High < third.Low:
				bias = domain.BiasBullish
			case first.Low > third.High:
				bias = domain.BiasBearish
			default:
				continue
			}
			if !yield(i, bias) {
				return
			}
		}
	}
}

// DetectOrderBlock busca el order block asociado a un fractal: la primera
// vela del primer triple de desequilibrio coherente con la polaridad del
// fractal (fractal inferior → hueco alcista, superior → bajista), explorando
// desde la primera vela constituyente. Devuelve ok=false si no hay patrón
// dentro del límite de búsqueda.
func (d *Detector) DetectOrderBlock(fractal domain.Fractal, bars []domain.Bar, strokes []domain.Stroke) (domain.OrderBlock, bool) {
	start, ok := fractalStartIndex(fractal, bars)
	if !ok {
		return domain.OrderBlock{}, false
	}

	wanted := domain.BiasBullish
	if fractal.Mark == domain.MarkTop {
		wanted = domain.BiasBearish
	}

	for i, bias := range imbalances(bars, start) {
		if i-start+3 > imbalanceSearchLimit {
			break
		}
		if bias != wanted {
			continue
		}

		candle := bars[i]
		triple := [3]domain.Bar{bars[i], bars[i+1], bars[i+2]}
		subsequent := windowAfter(bars, i+2, movementWindowBars)

		return domain.OrderBlock{
			Symbol:    fractal.Symbol,
			Candle:    candle,
			Fractal:   fractal,
			Imbalance: triple,
			Bias:      resolveBias(voteByStroke(candle, strokes), voteByMovement(candle, subsequent), bias),
			Upper:     candle.High,
			Lower:     candle.Low,
			FormedAt:  candle.Timestamp,
		}, true
	}
	return domain.OrderBlock{}, false
}

// DetectOrderBlocks aplica DetectOrderBlock a cada fractal de la lista.
// Emite cero o un bloque por fractal.
func (d *Detector) DetectOrderBlocks(bars []domain.Bar, fractals []domain.Fractal, strokes []domain.Stroke) []domain.OrderBlock {
	var blocks []domain.OrderBlock
	for _, fx := range fractals {
		if ob, ok := d.DetectOrderBlock(fx, bars, strokes); ok {
			blocks = append(blocks, ob)
		}
	}
	return blocks
}

// fractalStartIndex localiza la primera vela constituyente del fractal dentro
// de la secuencia de velas.
func fractalStartIndex(fractal domain.Fractal, bars []domain.Bar) (int, bool) {
	if len(fractal.Elements) == 0 {
		return 0, false
	}
	first := fractal.Elements[0].Timestamp
	for i, b := range bars {
		if b.Timestamp.Equal(first) {
			return i, true
		}
	}
	return 0, false
}

// windowAfter devuelve hasta n velas posteriores al índice dado.
func windowAfter(bars []domain.Bar, index, n int) []domain.Bar {
	from := index + 1
	if from >= len(bars) {
		return nil
	}
	to := from + n
	if to > len(bars) {
		to = len(bars)
	}
	return bars[from:to]
}
