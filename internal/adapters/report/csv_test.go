package report_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/structscan/internal/adapters/report"
	"github.com/alejandrodnm/structscan/internal/domain"
)

func sampleBreak() domain.StructureBreak {
	return domain.StructureBreak{
		Symbol:        "BTCUSDT",
		Timestamp:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Kind:          domain.KindFractalBOS,
		Direction:     domain.DirectionUp,
		BrokenLevel:   103,
		BreakPrice:    105.5,
		BreakDistance: 2.5,
		ATRMultiple:   2.5,
		Confirmation: domain.Confirmation{
			VolumeConfirmed:        true,
			TimeEfficiency:         0.9916666666666667,
			MomentumAligned:        true,
			ConvictionScore:        1.0 / 3.0, // fracción no exacta en binario
			FalseBreakProbability:  2.0 / 3.0,
			FollowThroughPotential: 0.4649999999999999,
			IsConfirmed:            false,
		},
	}
}

func TestCSV_RoundTripIsExact(t *testing.T) {
	records := []domain.BreakRecord{
		sampleBreak().Record(),
		{
			Symbol: "ETHUSDT", Timestamp: "2024-03-15T12:00:00Z",
			Kind: "stroke-CHOCH", Direction: "down",
			BrokenLevel: 91, BreakPrice: 89, BreakDistance: 2, ATRMultiple: 0.1 + 0.2,
			ConvictionScore: 0.7, IsConfirmed: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteBreaks(&buf, records))

	got, err := report.ReadBreaks(&buf)
	require.NoError(t, err)
	// Round-trip exacto incluso para flotantes sin representación binaria
	// finita: el formato 'g' con precisión -1 lo garantiza.
	assert.Equal(t, records, got)
}

func TestCSV_EmptyRecordsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteBreaks(&buf, nil))

	got, err := report.ReadBreaks(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSV_ReadRejectsEmptyInput(t *testing.T) {
	_, err := report.ReadBreaks(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestCSV_ReadRejectsMalformedRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteBreaks(&buf, nil))
	buf.WriteString("BTCUSDT,2024-03-15T10:30:00Z,fractal-BOS,up,bad-float,1,1,1,true,1,true,1,0,1,true,false\n")

	_, err := report.ReadBreaks(&buf)
	assert.Error(t, err)
}

func TestCSVExporter_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breaks.csv")
	exporter := report.NewCSVExporter(path)

	pass := domain.Pass{
		Symbol:     "BTCUSDT",
		DetectedAt: time.Now().UTC(),
		Breaks:     []domain.StructureBreak{sampleBreak()},
	}
	require.NoError(t, exporter.Report(context.Background(), pass))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := report.ReadBreaks(f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sampleBreak().Record(), got[0])
}
