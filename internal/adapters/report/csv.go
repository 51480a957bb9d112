package report

// csv.go — exportación de la proyección BreakRecord como CSV de intercambio.
// Los flotantes se formatean con 'g' y precisión -1: la representación mínima
// que recupera el mismo float64 al parsear (round-trip exacto).

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alejandrodnm/structscan/internal/domain"
)

var csvHeader = []string{
	"symbol", "dt", "break_type", "direction", "broken_level", "break_price",
	"break_distance", "atr_multiple", "volume_confirmation", "time_efficiency",
	"momentum_alignment", "conviction_score", "false_break_probability",
	"follow_through_potential", "is_confirmed", "is_failed",
}

// CSVExporter implementa ports.Reporter escribiendo la proyección de las
// rupturas de cada pasada a un fichero CSV.
type CSVExporter struct {
	path string
}

// NewCSVExporter crea un exportador sobre la ruta dada.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// Report escribe el fichero completo con una fila por ruptura.
func (e *CSVExporter) Report(_ context.Context, pass domain.Pass) error {
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("report.CSVExporter: create %q: %w", e.path, err)
	}
	defer f.Close()

	records := make([]domain.BreakRecord, 0, len(pass.Breaks))
	for _, sb := range pass.Breaks {
		records = append(records, sb.Record())
	}
	if err := WriteBreaks(f, records); err != nil {
		return fmt.Errorf("report.CSVExporter: write %q: %w", e.path, err)
	}
	return nil
}

// WriteBreaks escribe cabecera más una fila por registro.
func WriteBreaks(w io.Writer, records []domain.BreakRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		row := []string{
			r.Symbol,
			r.Timestamp,
			r.Kind,
			r.Direction,
			formatFloat(r.BrokenLevel),
			formatFloat(r.BreakPrice),
			formatFloat(r.BreakDistance),
			formatFloat(r.ATRMultiple),
			strconv.FormatBool(r.VolumeConfirmed),
			formatFloat(r.TimeEfficiency),
			strconv.FormatBool(r.MomentumAligned),
			formatFloat(r.ConvictionScore),
			formatFloat(r.FalseBreakProbability),
			formatFloat(r.FollowThroughPotential),
			strconv.FormatBool(r.IsConfirmed),
			strconv.FormatBool(r.IsFailed),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadBreaks parsea un CSV producido por WriteBreaks.
func ReadBreaks(r io.Reader) ([]domain.BreakRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv vacío: falta cabecera")
	}

	var records []domain.BreakRecord
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("fila %d: %d columnas, esperadas %d", i+1, len(row), len(csvHeader))
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (domain.BreakRecord, error) {
	var r domain.BreakRecord
	var err error

	r.Symbol = row[0]
	r.Timestamp = row[1]
	r.Kind = row[2]
	r.Direction = row[3]

	floats := []struct {
		dst *float64
		col int
	}{
		{&r.BrokenLevel, 4}, {&r.BreakPrice, 5}, {&r.BreakDistance, 6},
		{&r.ATRMultiple, 7}, {&r.TimeEfficiency, 9}, {&r.ConvictionScore, 11},
		{&r.FalseBreakProbability, 12}, {&r.FollowThroughPotential, 13},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(row[f.col], 64); err != nil {
			return domain.BreakRecord{}, fmt.Errorf("columna %s: %w", csvHeader[f.col], err)
		}
	}

	bools := []struct {
		dst *bool
		col int
	}{
		{&r.VolumeConfirmed, 8}, {&r.MomentumAligned, 10},
		{&r.IsConfirmed, 14}, {&r.IsFailed, 15},
	}
	for _, b := range bools {
		if *b.dst, err = strconv.ParseBool(row[b.col]); err != nil {
			return domain.BreakRecord{}, fmt.Errorf("columna %s: %w", csvHeader[b.col], err)
		}
	}
	return r, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
