package detector

import (
	"fmt"
	"sort"

	"github.com/alejandrodnm/structscan/internal/domain"
)

const (
	atrPeriod    = 14
	volumePeriod = 20

	// Ventanas de historia del clasificador BOS/CHOCH. Valores calibrados
	// empíricamente; no reajustar sin recalibrar.
	fractalHistoryWindow = 5
	strokeHistoryWindow  = 3
)

// Diagnostic describe un registro que no pudo construirse durante una pasada.
// La pasada continúa: el resultado es parcial, nunca un fallo total.
type Diagnostic struct {
	Index int // índice del punto estructural afectado en su secuencia
	Err   error
}

// Detector encuentra rupturas estructurales (BOS/CHOCH) y order blocks sobre
// secuencias ya descompuestas de velas, fractales y tramos.
//
// La detección es una función pura de sus entradas: sin estado interno entre
// llamadas, segura para invocar concurrentemente con secuencias distintas.
type Detector struct {
	cfg Config
}

// New crea un Detector validando la configuración una sola vez.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("detector.New: %w", err)
	}
	return &Detector{cfg: cfg.withDefaults()}, nil
}

// DetectAll ejecuta la pasada completa: rupturas por fractal y por tramo,
// fusionadas en una única lista ordenada por timestamp. Los registros que no
// pudieron construirse se devuelven como diagnósticos fuera de banda.
func (d *Detector) DetectAll(bars []domain.Bar, fractals []domain.Fractal, strokes []domain.Stroke) ([]domain.StructureBreak, []Diagnostic) {
	atr := domain.AverageTrueRange(bars, atrPeriod)
	avgVolume := domain.AverageVolume(bars, volumePeriod)

	breaks, diags := d.fractalBreaks(fractals, atr, avgVolume)
	strokeBreaks, strokeDiags := d.strokeBreaks(strokes, atr, avgVolume)
	breaks = append(breaks, strokeBreaks...)
	diags = append(diags, strokeDiags...)

	sort.SliceStable(breaks, func(i, j int) bool {
		return breaks[i].Timestamp.Before(breaks[j].Timestamp)
	})
	return breaks, diags
}

// DetectFractalBreaks detecta únicamente rupturas basadas en fractales.
func (d *Detector) DetectFractalBreaks(bars []domain.Bar, fractals []domain.Fractal) ([]domain.StructureBreak, []Diagnostic) {
	atr := domain.AverageTrueRange(bars, atrPeriod)
	avgVolume := domain.AverageVolume(bars, volumePeriod)
	return d.fractalBreaks(fractals, atr, avgVolume)
}

// DetectStrokeBreaks detecta únicamente rupturas basadas en tramos.
func (d *Detector) DetectStrokeBreaks(bars []domain.Bar, strokes []domain.Stroke) ([]domain.StructureBreak, []Diagnostic) {
	atr := domain.AverageTrueRange(bars, atrPeriod)
	avgVolume := domain.AverageVolume(bars, volumePeriod)
	return d.strokeBreaks(strokes, atr, avgVolume)
}

func (d *Detector) fractalBreaks(fractals []domain.Fractal, atr, avgVolume float64) ([]domain.StructureBreak, []Diagnostic) {
	if len(fractals) < 3 {
		return nil, nil // evidencia insuficiente: no es un error
	}

	var breaks []domain.StructureBreak
	var diags []Diagnostic
	for i := 2; i < len(fractals); i++ {
		current := fractals[i]

		target, ok := latestSameMark(fractals[:i], current.Mark)
		if !ok {
			continue
		}
		distance, ok := d.fractalBreakDistance(current, target, atr)
		if !ok {
			continue
		}

		sb, err := d.buildFractalBreak(current, target, fractals[:i], distance, atr, avgVolume)
		if err != nil {
			diags = append(diags, Diagnostic{Index: i, Err: err})
			continue
		}
		breaks = append(breaks, sb)
	}
	return breaks, diags
}

func (d *Detector) strokeBreaks(strokes []domain.Stroke, atr, avgVolume float64) ([]domain.StructureBreak, []Diagnostic) {
	if len(strokes) < 3 {
		return nil, nil
	}

	var breaks []domain.StructureBreak
	var diags []Diagnostic
	for i := 2; i < len(strokes); i++ {
		current := strokes[i]

		target, ok := latestSameDirection(strokes[:i], current.Direction)
		if !ok {
			continue
		}
		distance, ok := d.strokeBreakDistance(current, target, atr)
		if !ok {
			continue
		}

		sb, err := d.buildStrokeBreak(current, target, strokes[:i], distance, atr, avgVolume)
		if err != nil {
			diags = append(diags, Diagnostic{Index: i, Err: err})
			continue
		}
		breaks = append(breaks, sb)
	}
	return breaks, diags
}

// latestSameMark devuelve el fractal previo más reciente con la polaridad
// dada. Recorrido en reversa con salida temprana; la ausencia se señala con
// ok=false, nunca con un valor cero ambiguo.
func latestSameMark(fractals []domain.Fractal, mark domain.FractalMark) (domain.Fractal, bool) {
	for i := len(fractals) - 1; i >= 0; i-- {
		if fractals[i].Mark == mark {
			return fractals[i], true
		}
	}
	return domain.Fractal{}, false
}

// latestSameDirection devuelve el tramo previo más reciente con la dirección
// dada.
func latestSameDirection(strokes []domain.Stroke, dir domain.Direction) (domain.Stroke, bool) {
	for i := len(strokes) - 1; i >= 0; i-- {
		if strokes[i].Direction == dir {
			return strokes[i], true
		}
	}
	return domain.Stroke{}, false
}

// fractalBreakDistance comprueba si current supera estrictamente el nivel del
// target y si la distancia normalizada por ATR alcanza el mínimo configurado.
// Un candidato insuficiente se descarta sin emitir evento.
func (d *Detector) fractalBreakDistance(current, target domain.Fractal, atr float64) (float64, bool) {
	var distance float64
	switch {
	case current.Mark == domain.MarkTop && current.Value > target.Value:
		distance = current.Value - target.Value
	case current.Mark == domain.MarkBottom && current.Value < target.Value:
		distance = target.Value - current.Value
	default:
		return 0, false
	}
	if atr > 0 && distance/atr < d.cfg.MinATRMultiple {
		return 0, false
	}
	return distance, true
}

// strokeBreakDistance es el equivalente para tramos: un tramo al alza rompe
// superando el high del objetivo, uno a la baja perforando su low.
func (d *Detector) strokeBreakDistance(current, target domain.Stroke, atr float64) (float64, bool) {
	var distance float64
	switch {
	case current.Direction == domain.DirectionUp && current.High > target.High:
		distance = current.High - target.High
	case current.Direction == domain.DirectionDown && current.Low < target.Low:
		distance = target.Low - current.Low
	default:
		return 0, false
	}
	if atr > 0 && distance/atr < d.cfg.MinATRMultiple {
		return 0, false
	}
	return distance, true
}

// classifyFractalBreak etiqueta la ruptura: si la ventana reciente de
// fractales previos contiene alguno de polaridad opuesta, la historia venía
// en contra → CHOCH; si no, continuación → BOS.
func classifyFractalBreak(current domain.Fractal, previous []domain.Fractal) domain.BreakKind {
	window := previous
	if len(window) > fractalHistoryWindow {
		window = window[len(window)-fractalHistoryWindow:]
	}
	for _, fx := range window {
		if fx.Mark != current.Mark {
			return domain.KindFractalCHOCH
		}
	}
	return domain.KindFractalBOS
}

func classifyStrokeBreak(current domain.Stroke, previous []domain.Stroke) domain.BreakKind {
	window := previous
	if len(window) > strokeHistoryWindow {
		window = window[len(window)-strokeHistoryWindow:]
	}
	for _, bi := range window {
		if bi.Direction != current.Direction {
			return domain.KindStrokeCHOCH
		}
	}
	return domain.KindStrokeBOS
}

func (d *Detector) buildFractalBreak(current, target domain.Fractal, previous []domain.Fractal, distance, atr, avgVolume float64) (domain.StructureBreak, error) {
	if current.Strength() == 0 {
		return domain.StructureBreak{}, fmt.Errorf("fractal %s sin velas constituyentes", current.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	}

	direction := domain.DirectionDown
	if current.Mark == domain.MarkTop {
		direction = domain.DirectionUp
	}

	volumeConfirmed := current.MaxVolume() > avgVolume*d.cfg.MinVolumeRatio
	timeEff := domain.TimeEfficiencyHours(current.Timestamp.Sub(target.Timestamp))
	momentumAligned := current.Strength() >= d.cfg.FXMinStrength

	return domain.StructureBreak{
		Symbol:        current.Symbol,
		Timestamp:     current.Timestamp,
		Kind:          classifyFractalBreak(current, previous),
		Direction:     direction,
		BrokenLevel:   target.Value,
		BreakPrice:    current.Value,
		BreakDistance: distance,
		ATRMultiple:   atrMultiple(distance, atr),
		Evidence:      domain.FractalPair{Breaking: current, Broken: target},
		Confirmation:  buildConfirmation(volumeConfirmed, timeEff, momentumAligned),
	}, nil
}

func (d *Detector) buildStrokeBreak(current, target domain.Stroke, previous []domain.Stroke, distance, atr, avgVolume float64) (domain.StructureBreak, error) {
	if current.Length <= 0 {
		return domain.StructureBreak{}, fmt.Errorf("tramo %s con longitud %d", current.EndTimestamp().Format("2006-01-02T15:04:05Z07:00"), current.Length)
	}

	brokenLevel, breakPrice := target.High, current.High
	if current.Direction == domain.DirectionDown {
		brokenLevel, breakPrice = target.Low, current.Low
	}

	volumeConfirmed := current.PowerVolume > avgVolume*d.cfg.MinVolumeRatio
	timeEff := domain.TimeEfficiencyBars(current.Length, d.cfg.MaxTimeBars)
	momentumAligned := current.PowerPrice >= d.cfg.BIMinPower

	return domain.StructureBreak{
		Symbol:        current.Symbol,
		Timestamp:     current.EndTimestamp(),
		Kind:          classifyStrokeBreak(current, previous),
		Direction:     current.Direction,
		BrokenLevel:   brokenLevel,
		BreakPrice:    breakPrice,
		BreakDistance: distance,
		ATRMultiple:   atrMultiple(distance, atr),
		Evidence:      domain.StrokePair{Breaking: current, Broken: target},
		Confirmation:  buildConfirmation(volumeConfirmed, timeEff, momentumAligned),
	}, nil
}

// buildConfirmation deriva el bloque completo de confirmación a partir de los
// tres factores base.
func buildConfirmation(volumeConfirmed bool, timeEff float64, momentumAligned bool) domain.Confirmation {
	conviction := domain.ConvictionScore(volumeConfirmed, timeEff, momentumAligned)
	return domain.Confirmation{
		VolumeConfirmed:        volumeConfirmed,
		TimeEfficiency:         timeEff,
		MomentumAligned:        momentumAligned,
		ConvictionScore:        conviction,
		FalseBreakProbability:  domain.FalseBreakProbability(conviction),
		FollowThroughPotential: domain.FollowThroughPotential(conviction, timeEff),
		IsConfirmed:            domain.Confirmed(conviction),
	}
}

// atrMultiple normaliza una distancia por ATR; con ATR ≤ 0 devuelve 0 en vez
// de propagar una división inválida.
func atrMultiple(distance, atr float64) float64 {
	if atr <= 0 {
		return 0
	}
	return distance / atr
}
