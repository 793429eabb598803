package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *FileValidator {
	return NewFileValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "history.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b,c,d,e,f\n"), 0o644))
	xlsxPath := filepath.Join(dir, "history.XLSX")
	require.NoError(t, os.WriteFile(xlsxPath, []byte("stub"), 0o644))
	txtPath := filepath.Join(dir, "history.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("nope"), 0o644))

	v := newValidator()

	assert.NoError(t, v.ValidateInputFile(csvPath))
	assert.NoError(t, v.ValidateInputFile(xlsxPath), "extension check is case-insensitive")

	err := v.ValidateInputFile(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")

	err = v.ValidateInputFile(filepath.Join(dir, "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	err = v.ValidateInputFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateOutputPath(t *testing.T) {
	v := newValidator()

	out := filepath.Join(t.TempDir(), "charts", "enrolments.svg")
	require.NoError(t, v.ValidateOutputPath(out))

	info, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
