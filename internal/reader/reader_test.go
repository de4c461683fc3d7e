package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smilemakc/workflowgraphs/internal/errs"
	"github.com/smilemakc/workflowgraphs/internal/logging"
)

func TestReadMissingFile(t *testing.T) {
	r := New(logging.Nop())
	_, _, err := r.Read(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	var parseErr *errs.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestReadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wf.py")
	require.NoError(t, os.WriteFile(path, []byte("class W:\n    async def run(self):\n        pass\n"), 0o644))

	r := New(logging.Nop())
	mod, src, err := r.Read(path)
	require.NoError(t, err)
	require.NotEmpty(t, src)
	require.Len(t, mod.Body, 1)
}

func TestReadSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 'unterminated\n"), 0o644))

	r := New(logging.Nop())
	_, _, err := r.Read(path)
	require.Error(t, err)
	var parseErr *errs.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Line)
}
