package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/structscan/internal/adapters/storage"
	"github.com/alejandrodnm/structscan/internal/domain"
)

func makeBreak(h int, kind domain.BreakKind, conviction float64) domain.StructureBreak {
	return domain.StructureBreak{
		Symbol:        "BTCUSDT",
		Timestamp:     time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC),
		Kind:          kind,
		Direction:     domain.DirectionUp,
		BrokenLevel:   103,
		BreakPrice:    105.5,
		BreakDistance: 2.5,
		ATRMultiple:   2.5,
		Confirmation: domain.Confirmation{
			VolumeConfirmed:        true,
			TimeEfficiency:         0.5,
			MomentumAligned:        true,
			ConvictionScore:        conviction,
			FalseBreakProbability:  1 - conviction,
			FollowThroughPotential: 0.8*conviction + 0.1,
			IsConfirmed:            conviction >= domain.ConfirmationThreshold,
		},
	}
}

func makeBlock(h int) domain.OrderBlock {
	return domain.OrderBlock{
		Symbol:   "BTCUSDT",
		Candle:   domain.Bar{Volume: 1500},
		Bias:     domain.BiasBullish,
		Upper:    106,
		Lower:    104,
		FormedAt: time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStorage_SavePassAndHistory(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	pass := domain.Pass{
		Symbol:     "BTCUSDT",
		DetectedAt: time.Now().UTC().Truncate(time.Second),
		Breaks: []domain.StructureBreak{
			makeBreak(12, domain.KindFractalBOS, 0.9),
			makeBreak(14, domain.KindStrokeCHOCH, 0.4),
		},
		Blocks: []domain.OrderBlock{makeBlock(10)},
	}

	ctx := context.Background()
	require.NoError(t, db.SavePass(ctx, pass))

	records, err := db.History(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Orden ascendente por timestamp y round-trip de la proyección completa.
	assert.Equal(t, pass.Breaks[0].Record(), records[0])
	assert.Equal(t, pass.Breaks[1].Record(), records[1])
}

func TestSQLiteStorage_HistoryRangeFilter(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	pass := domain.Pass{
		Symbol:     "BTCUSDT",
		DetectedAt: time.Now().UTC(),
		Breaks: []domain.StructureBreak{
			makeBreak(6, domain.KindFractalBOS, 0.9),
			makeBreak(18, domain.KindFractalCHOCH, 0.8),
		},
	}
	require.NoError(t, db.SavePass(ctx, pass))

	records, err := db.History(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fractal-BOS", records[0].Kind)
}

func TestSQLiteStorage_EmptyPass(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	pass := domain.Pass{Symbol: "BTCUSDT", DetectedAt: time.Now().UTC()}
	require.NoError(t, db.SavePass(ctx, pass))

	records, err := db.History(ctx,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStorage_MultiplePasses(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		pass := domain.Pass{
			Symbol:     "BTCUSDT",
			DetectedAt: time.Now().UTC(),
			Breaks:     []domain.StructureBreak{makeBreak(10+i, domain.KindFractalBOS, 0.9)},
		}
		require.NoError(t, db.SavePass(ctx, pass))
	}

	records, err := db.History(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
