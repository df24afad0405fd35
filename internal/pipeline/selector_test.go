package pipeline_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/pipeline"
)

var searchDate = time.Date(2021, time.December, 15, 0, 0, 0, 0, time.UTC)

func TestSelector_PicksClosestFile(t *testing.T) {
	sel := pipeline.NewSelector(domain.DefaultWeights, discardLogger(), newTestMetrics())

	match, err := sel.SelectBest([]string{
		"ETA40_p101221a181221.dat",
		"ETA40_p141221a161221.dat",
		"ETA40_p011221a021221.dat",
	}, searchDate)

	require.NoError(t, err)
	assert.Equal(t, "ETA40_p141221a161221.dat", match.Name)
	assert.Equal(t, time.Date(2021, time.December, 14, 0, 0, 0, 0, time.UTC), match.Dates.Issued)
	assert.Equal(t, time.Date(2021, time.December, 16, 0, 0, 0, 0, time.UTC), match.Dates.Target)
}

func TestSelector_TieKeepsFirstSeen(t *testing.T) {
	sel := pipeline.NewSelector(domain.Weights{Issued: 1, Target: 1}, discardLogger(), newTestMetrics())

	match, err := sel.SelectBest([]string{
		"ETA40_p161221a141221.dat",
		"ETA40_p141221a161221.dat",
	}, searchDate)

	require.NoError(t, err)
	assert.Equal(t, "ETA40_p161221a141221.dat", match.Name)
}

func TestSelector_SkipsUndecodableEntries(t *testing.T) {
	logger, buf := bufferLogger()
	metrics := newTestMetrics()
	sel := pipeline.NewSelector(domain.DefaultWeights, logger, metrics)

	match, err := sel.SelectBest([]string{
		"PSATCMG_CAMARGOS.bln",
		"ETA40_p321221a021221.dat",
		"ETA40_p131221a141221.dat",
		"notes.txt",
	}, searchDate)

	require.NoError(t, err)
	assert.Equal(t, "ETA40_p131221a141221.dat", match.Name)
	assert.Contains(t, buf.String(), "file=PSATCMG_CAMARGOS.bln")
	assert.Contains(t, buf.String(), "file=ETA40_p321221a021221.dat")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.InDelta(t, 4.0, testutil.ToFloat64(metrics.FilesScanned), 1e-9)
	assert.InDelta(t, 3.0, testutil.ToFloat64(metrics.DecodeFailures), 1e-9)
}

func TestSelector_EmptyListing(t *testing.T) {
	sel := pipeline.NewSelector(domain.DefaultWeights, discardLogger(), newTestMetrics())

	_, err := sel.SelectBest(nil, searchDate)
	assert.ErrorIs(t, err, domain.ErrEmptyDirectory)
}

func TestSelector_NothingDecodes(t *testing.T) {
	sel := pipeline.NewSelector(domain.DefaultWeights, discardLogger(), newTestMetrics())

	_, err := sel.SelectBest([]string{"a.txt", "b.bln", "ETA40.dat"}, searchDate)
	require.ErrorIs(t, err, domain.ErrNoMatch)
	assert.Contains(t, err.Error(), "2021-12-15")
}

func TestSelector_SingleCandidateWins(t *testing.T) {
	sel := pipeline.NewSelector(domain.DefaultWeights, discardLogger(), newTestMetrics())

	match, err := sel.SelectBest([]string{"ETA40_p010120a020120.dat"}, searchDate)
	require.NoError(t, err)
	assert.Equal(t, "ETA40_p010120a020120.dat", match.Name)
}

func TestSelector_Deterministic(t *testing.T) {
	names := []string{"ETA40_p121221a131221.dat", "ETA40_p161221a171221.dat", "ETA40_p141221a191221.dat"}
	sel := pipeline.NewSelector(domain.Weights{Issued: 0.2, Target: 0.8}, discardLogger(), newTestMetrics())

	first, err := sel.SelectBest(names, searchDate)
	require.NoError(t, err)
	for range 5 {
		again, err := sel.SelectBest(names, searchDate)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
