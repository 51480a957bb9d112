package domain

import "time"

// BreakKind clasifica una ruptura estructural según el punto que la produce
// (fractal o tramo) y su relación con la historia reciente (BOS/CHOCH).
type BreakKind string

const (
	KindFractalBOS   BreakKind = "fractal-BOS"
	KindFractalCHOCH BreakKind = "fractal-CHOCH"
	KindStrokeBOS    BreakKind = "stroke-BOS"
	KindStrokeCHOCH  BreakKind = "stroke-CHOCH"
)

// Confirmation agrupa los indicadores de confirmación de una ruptura.
type Confirmation struct {
	VolumeConfirmed        bool
	TimeEfficiency         float64 // 0..1
	MomentumAligned        bool
	ConvictionScore        float64 // 0..1
	FalseBreakProbability  float64 // 0..1, complementario del conviction
	FollowThroughPotential float64 // 0..1
	IsConfirmed            bool    // conviction ≥ ConfirmationThreshold
	IsFailed               bool
}

// Evidence referencia el par estructural que produjo la ruptura. Cada evento
// lleva exactamente una de las dos variantes, determinada por su Kind.
type Evidence interface {
	isEvidence()
}

// FractalPair es la evidencia de una ruptura basada en fractales.
type FractalPair struct {
	Breaking Fractal // fractal que rompe
	Broken   Fractal // fractal cuyo nivel fue roto
}

func (FractalPair) isEvidence() {}

// StrokePair es la evidencia de una ruptura basada en tramos.
type StrokePair struct {
	Breaking Stroke
	Broken   Stroke
}

func (StrokePair) isEvidence() {}

// StructureBreak es una ruptura estructural detectada. Se crea una sola vez y
// nunca se muta: es un hecho terminal sobre el histórico. Su timestamp nunca
// precede al de la evidencia que lo construyó.
type StructureBreak struct {
	Symbol        string
	Timestamp     time.Time
	Kind          BreakKind
	Direction     Direction
	BrokenLevel   float64 // nivel que fue roto
	BreakPrice    float64 // precio que rompió el nivel
	BreakDistance float64 // exceso sobre el nivel, siempre ≥ 0
	ATRMultiple   float64 // distancia normalizada por ATR; 0 si ATR ≤ 0
	Evidence      Evidence
	Confirmation  Confirmation
}

// BreakRecord es la proyección serializable de una ruptura: la forma de
// persistencia e intercambio (CSV, SQLite). Todos los campos escalares hacen
// round-trip exacto; las referencias a fractales/tramos no se proyectan.
type BreakRecord struct {
	Symbol                 string  `json:"symbol"`
	Timestamp              string  `json:"dt"` // ISO-8601
	Kind                   string  `json:"break_type"`
	Direction              string  `json:"direction"`
	BrokenLevel            float64 `json:"broken_level"`
	BreakPrice             float64 `json:"break_price"`
	BreakDistance          float64 `json:"break_distance"`
	ATRMultiple            float64 `json:"atr_multiple"`
	VolumeConfirmed        bool    `json:"volume_confirmation"`
	TimeEfficiency         float64 `json:"time_efficiency"`
	MomentumAligned        bool    `json:"momentum_alignment"`
	ConvictionScore        float64 `json:"conviction_score"`
	FalseBreakProbability  float64 `json:"false_break_probability"`
	FollowThroughPotential float64 `json:"follow_through_potential"`
	IsConfirmed            bool    `json:"is_confirmed"`
	IsFailed               bool    `json:"is_failed"`
}

// Record devuelve la proyección serializable del evento.
func (sb StructureBreak) Record() BreakRecord {
	return BreakRecord{
		Symbol:                 sb.Symbol,
		Timestamp:              sb.Timestamp.UTC().Format(time.RFC3339Nano),
		Kind:                   string(sb.Kind),
		Direction:              string(sb.Direction),
		BrokenLevel:            sb.BrokenLevel,
		BreakPrice:             sb.BreakPrice,
		BreakDistance:          sb.BreakDistance,
		ATRMultiple:            sb.ATRMultiple,
		VolumeConfirmed:        sb.Confirmation.VolumeConfirmed,
		TimeEfficiency:         sb.Confirmation.TimeEfficiency,
		MomentumAligned:        sb.Confirmation.MomentumAligned,
		ConvictionScore:        sb.Confirmation.ConvictionScore,
		FalseBreakProbability:  sb.Confirmation.FalseBreakProbability,
		FollowThroughPotential: sb.Confirmation.FollowThroughPotential,
		IsConfirmed:            sb.Confirmation.IsConfirmed,
		IsFailed:               sb.Confirmation.IsFailed,
	}
}

// Pass es el resultado completo de una pasada de detección sobre una serie.
type Pass struct {
	Symbol     string
	DetectedAt time.Time
	Breaks     []StructureBreak
	Blocks     []OrderBlock
}
