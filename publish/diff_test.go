package publish

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferInlineFallback(t *testing.T) {
	var out bytes.Buffer
	d := NewDiffer(&out, zerolog.Nop())
	d.Tool = "no-such-diff-tool"
	dir := t.TempDir()
	d.RemotePath = filepath.Join(dir, "remote")
	d.LocalPath = filepath.Join(dir, "local")

	d.Show("line one\nline two\n", "line one\nline 2\n")

	assert.Contains(t, out.String(), "-line two")
	assert.Contains(t, out.String(), "+line 2")

	// scratch files stay behind for the operator
	remote, err := os.ReadFile(d.RemotePath)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(remote))
	local, err := os.ReadFile(d.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline 2\n", string(local))
}

func TestDifferUnwritableScratchIsNonFatal(t *testing.T) {
	var out bytes.Buffer
	d := NewDiffer(&out, zerolog.Nop())
	d.RemotePath = filepath.Join(t.TempDir(), "missing-dir", "remote")

	// must not panic or error out; the update proceeds without a diff
	d.Show("a\n", "b\n")
	assert.Empty(t, out.String())
}
