package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRowsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrolments.csv")
	content := "29-Jul-2014 09:00,Smith,Alice,100001,asmith,Removed\n" +
		"27-Jul-2014 10:00,Smith,Alice,100001,asmith,Added\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "29-Jul-2014 09:00", rows[0][0])
	assert.Equal(t, "Added", rows[1][5])
}

func TestReadRowsCSVRaggedRowsSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrolments.csv")
	content := "a,b\n1,2,3,4,5,6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2, "ragged rows reach the parser untouched")
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 6)
}

func TestReadRowsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrolments.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1",
		&[]string{"29-Jul-2014 09:00", "Smith", "Alice", "100001", "asmith", "Removed"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2",
		&[]string{"27-Jul-2014 10:00", "Smith", "Alice", "100001", "asmith", "Added"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Removed", rows[0][5])
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
