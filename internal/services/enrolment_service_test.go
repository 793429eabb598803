package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistoryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testService() *EnrolmentService {
	return NewEnrolmentService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuildSeries(t *testing.T) {
	// Reverse-chronological export: latest event first.
	input := writeHistoryFile(t,
		"02-Aug-2014 10:00,Smith,Jane,123,jsmith,Removed\n"+
			"30-Jul-2014 09:00,Smith,Jane,123,jsmith,Added\n"+
			"28-Jul-2014 12:00,Jones,Bob,456,bjones,Added\n")

	svc := testService()
	result, err := svc.BuildSeries(context.Background(), SeriesRequest{
		InputPath: input,
		EpochDate: "28-Jul-2014",
		Low:       50,
		High:      100,
	})
	require.NoError(t, err)

	require.True(t, result.OK)
	assert.Equal(t, []int{0, 1, 4}, result.Series.Days)
	assert.Equal(t, []int{1, 2, 1}, result.Series.Counts)
	assert.Equal(t, 2, result.Summary.Maximum)
	assert.Equal(t, 1, result.Summary.Current)
}

func TestBuildSeriesWindowing(t *testing.T) {
	input := writeHistoryFile(t,
		"30-Jul-2014 09:00,Smith,Jane,123,jsmith,Added\n"+
			"28-Jul-2014 12:00,Jones,Bob,456,bjones,Added\n")

	svc := testService()
	result, err := svc.BuildSeries(context.Background(), SeriesRequest{
		InputPath: input,
		EpochDate: "28-Jul-2014",
		Low:       0,
		High:      0,
	})
	require.NoError(t, err)

	require.True(t, result.OK)
	assert.Equal(t, []int{0}, result.Series.Days)
	assert.Equal(t, []int{1}, result.Series.Counts)
}

func TestBuildSeriesEmptyWindow(t *testing.T) {
	input := writeHistoryFile(t,
		"28-Jul-2014 12:00,Jones,Bob,456,bjones,Added\n")

	svc := testService()
	result, err := svc.BuildSeries(context.Background(), SeriesRequest{
		InputPath: input,
		EpochDate: "28-Dec-2014",
		Low:       1,
		High:      1,
	})
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.True(t, result.Series.Empty())
	assert.Zero(t, result.Summary.Maximum)
	assert.Zero(t, result.Summary.Current)
}

func TestBuildSeriesBadEpoch(t *testing.T) {
	input := writeHistoryFile(t, "28-Jul-2014 12:00,Jones,Bob,456,bjones,Added\n")

	svc := testService()
	_, err := svc.BuildSeries(context.Background(), SeriesRequest{
		InputPath: input,
		EpochDate: "not-a-date",
		Low:       50,
		High:      100,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid epoch date")
}

func TestBuildSeriesMissingFile(t *testing.T) {
	svc := testService()
	_, err := svc.BuildSeries(context.Background(), SeriesRequest{
		InputPath: filepath.Join(t.TempDir(), "absent.csv"),
		EpochDate: "28-Jul-2014",
		Low:       50,
		High:      100,
	})
	require.Error(t, err)
}
