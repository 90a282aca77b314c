package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `step,total_loss,mean_episode_return
0,10.5,-1
500,9.25,0.5
1000,8,2
1500,7.75,3.5
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_CSV(t *testing.T) {
	ds, err := Load(writeTempCSV(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"total_loss", "mean_episode_return"}, ds.Keys())
	assert.Equal(t, []float64{0, 500, 1000, 1500}, ds.Steps())

	loss, err := ds.Column("total_loss")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 9.25, 8, 7.75}, loss)

	ret, err := ds.Column("mean_episode_return")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0.5, 2, 3.5}, ret)
}

func TestLoad_MissingStepColumn(t *testing.T) {
	_, err := Load(writeTempCSV(t, "a,b\n1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"step"`)
}

func TestColumn_UnknownMetric(t *testing.T) {
	ds, err := Load(writeTempCSV(t, sampleCSV))
	require.NoError(t, err)

	_, err = ds.Column("no_such_key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSuchMetric)
	assert.False(t, ds.Has("no_such_key"))
	assert.True(t, ds.Has("total_loss"))
}

func TestSummarize(t *testing.T) {
	ds := New(
		[]float64{0, 1, 2, 3},
		Column{Key: "loss", Values: []float64{4, math.NaN(), 2, 6}},
	)
	s, err := ds.Summarize("loss")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 2, s.Min, 1e-12)
	assert.InDelta(t, 6, s.Max, 1e-12)
	assert.InDelta(t, 4, s.Mean, 1e-12)
	assert.InDelta(t, 6, s.Last, 1e-12)

	_, err = ds.Summarize("nope")
	assert.ErrorIs(t, err, ErrNoSuchMetric)
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.xlsx")
	wb := excelize.NewFile()
	rows := [][]interface{}{
		{"step", "total_loss"},
		{0, 3.5},
		{100, 2.25},
		{200, 1.0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"total_loss"}, ds.Keys())
	assert.Equal(t, []float64{0, 100, 200}, ds.Steps())
	loss, err := ds.Column("total_loss")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3.5, 2.25, 1}, loss, 1e-9)
}
