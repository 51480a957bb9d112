package series

import (
	"fmt"
	"time"

	"github.com/alejandrodnm/structscan/internal/domain"
)

// DTOs del documento de la etapa de descomposición. Se mapean a tipos de
// dominio en este adaptador; el dominio no conoce el formato de fichero.

type document struct {
	Symbol   string       `json:"symbol"`
	Bars     []barDTO     `json:"bars"`
	Fractals []fractalDTO `json:"fractals"`
	Strokes  []strokeDTO  `json:"strokes"`
}

type barDTO struct {
	Timestamp string  `json:"dt"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"vol"`
	Amount    float64 `json:"amount"`
}

type fractalDTO struct {
	Timestamp string   `json:"dt"`
	Mark      string   `json:"mark"` // "top" | "bottom"
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Value     float64  `json:"fx"`
	Elements  []barDTO `json:"elements"`
}

type strokeDTO struct {
	Start       fractalDTO `json:"start"`
	End         fractalDTO `json:"end"`
	Direction   string     `json:"direction"` // "up" | "down"
	Bars        []barDTO   `json:"bars"`
	High        float64    `json:"high"`
	Low         float64    `json:"low"`
	Length      int        `json:"length"`
	PowerPrice  float64    `json:"power_price"`
	PowerVolume float64    `json:"power_volume"`
}

func mapSeries(doc document) (domain.Series, error) {
	s := domain.Series{Symbol: doc.Symbol}

	for i, b := range doc.Bars {
		bar, err := mapBar(doc.Symbol, b)
		if err != nil {
			return domain.Series{}, fmt.Errorf("bar %d: %w", i, err)
		}
		s.Bars = append(s.Bars, bar)
	}
	for i, f := range doc.Fractals {
		fx, err := mapFractal(doc.Symbol, f)
		if err != nil {
			return domain.Series{}, fmt.Errorf("fractal %d: %w", i, err)
		}
		s.Fractals = append(s.Fractals, fx)
	}
	for i, bi := range doc.Strokes {
		stroke, err := mapStroke(doc.Symbol, bi)
		if err != nil {
			return domain.Series{}, fmt.Errorf("stroke %d: %w", i, err)
		}
		s.Strokes = append(s.Strokes, stroke)
	}
	return s, nil
}

func mapBar(symbol string, dto barDTO) (domain.Bar, error) {
	ts, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return domain.Bar{}, fmt.Errorf("timestamp %q: %w", dto.Timestamp, err)
	}
	return domain.Bar{
		Symbol:    symbol,
		Timestamp: ts,
		Open:      dto.Open,
		High:      dto.High,
		Low:       dto.Low,
		Close:     dto.Close,
		Volume:    dto.Volume,
		Amount:    dto.Amount,
	}, nil
}

func mapFractal(symbol string, dto fractalDTO) (domain.Fractal, error) {
	ts, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return domain.Fractal{}, fmt.Errorf("timestamp %q: %w", dto.Timestamp, err)
	}
	mark, err := mapMark(dto.Mark)
	if err != nil {
		return domain.Fractal{}, err
	}

	fx := domain.Fractal{
		Symbol:    symbol,
		Timestamp: ts,
		Mark:      mark,
		High:      dto.High,
		Low:       dto.Low,
		Value:     dto.Value,
	}
	for i, b := range dto.Elements {
		bar, err := mapBar(symbol, b)
		if err != nil {
			return domain.Fractal{}, fmt.Errorf("element %d: %w", i, err)
		}
		fx.Elements = append(fx.Elements, bar)
	}
	return fx, nil
}

func mapStroke(symbol string, dto strokeDTO) (domain.Stroke, error) {
	start, err := mapFractal(symbol, dto.Start)
	if err != nil {
		return domain.Stroke{}, fmt.Errorf("start: %w", err)
	}
	end, err := mapFractal(symbol, dto.End)
	if err != nil {
		return domain.Stroke{}, fmt.Errorf("end: %w", err)
	}

	var dir domain.Direction
	switch dto.Direction {
	case "up":
		dir = domain.DirectionUp
	case "down":
		dir = domain.DirectionDown
	default:
		return domain.Stroke{}, fmt.Errorf("direction %q desconocida", dto.Direction)
	}

	bi := domain.Stroke{
		Symbol:      symbol,
		Start:       start,
		End:         end,
		Direction:   dir,
		High:        dto.High,
		Low:         dto.Low,
		Length:      dto.Length,
		PowerPrice:  dto.PowerPrice,
		PowerVolume: dto.PowerVolume,
	}
	for i, b := range dto.Bars {
		bar, err := mapBar(symbol, b)
		if err != nil {
			return domain.Stroke{}, fmt.Errorf("bar %d: %w", i, err)
		}
		bi.Bars = append(bi.Bars, bar)
	}
	return bi, nil
}

func mapMark(raw string) (domain.FractalMark, error) {
	switch raw {
	case "top":
		return domain.MarkTop, nil
	case "bottom":
		return domain.MarkBottom, nil
	default:
		return "", fmt.Errorf("mark %q desconocida", raw)
	}
}
