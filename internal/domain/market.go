package domain

import "time"

// Bar es una vela ya procesada por la etapa de descomposición estructural.
// Es inmutable: este paquete nunca la modifica.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Amount    float64
}

// Range devuelve el rango high-low de la vela.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// FractalMark es la polaridad de un fractal.
type FractalMark string

const (
	MarkTop    FractalMark = "top"    // extremo local superior
	MarkBottom FractalMark = "bottom" // extremo local inferior
)

// Fractal es un extremo local identificado aguas arriba a partir de una
// secuencia impar de velas consecutivas (≥ 3).
type Fractal struct {
	Symbol    string
	Timestamp time.Time
	Mark      FractalMark
	High      float64 // máximo de la envolvente de velas constituyentes
	Low       float64 // mínimo de la envolvente
	Value     float64 // precio representativo del extremo
	Elements  []Bar   // velas constituyentes, en orden temporal
}

// Strength devuelve la fuerza del fractal: su número de velas constituyentes.
func (f Fractal) Strength() int {
	return len(f.Elements)
}

// MaxVolume devuelve el volumen máximo entre las velas constituyentes.
func (f Fractal) MaxVolume() float64 {
	var max float64
	for _, b := range f.Elements {
		if b.Volume > max {
			max = b.Volume
		}
	}
	return max
}

// Direction es la dirección de un movimiento estructural.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Stroke es un tramo direccional que conecta dos fractales de polaridad
// opuesta.
type Stroke struct {
	Symbol      string
	Start       Fractal
	End         Fractal
	Direction   Direction
	Bars        []Bar // subsecuencia de velas que abarca el tramo
	High        float64
	Low         float64
	Length      int     // número de velas del tramo
	PowerPrice  float64 // extensión de precio del tramo
	PowerVolume float64 // volumen agregado del tramo
}

// EndTimestamp devuelve el instante del fractal final del tramo.
func (s Stroke) EndTimestamp() time.Time {
	return s.End.Timestamp
}

// Covers informa si el instante dado cae dentro del rango temporal del tramo,
// extremos incluidos.
func (s Stroke) Covers(t time.Time) bool {
	return !t.Before(s.Start.Timestamp) && !t.After(s.End.Timestamp)
}

// Series agrupa las tres secuencias de entrada de una pasada de detección.
// Precondición: las tres llegan ordenadas por tiempo y derivan de la misma
// secuencia de velas; este módulo no revalida invariantes del colaborador
// aguas arriba.
type Series struct {
	Symbol   string
	Bars     []Bar
	Fractals []Fractal
	Strokes  []Stroke
}
