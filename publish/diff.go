package publish

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
)

// Differ shows the delta between the remote article and the local document
// before an update is approved.
type Differ struct {
	Tool       string // external side-by-side diff command
	RemotePath string
	LocalPath  string
	Out        io.Writer
	log        zerolog.Logger
}

// NewDiffer creates a differ using icdiff and scratch files under the
// system temp directory.
func NewDiffer(out io.Writer, log zerolog.Logger) *Differ {
	return &Differ{
		Tool:       "icdiff",
		RemotePath: filepath.Join(os.TempDir(), "qiita-publisher.md.remote"),
		LocalPath:  filepath.Join(os.TempDir(), "qiita-publisher.md.local"),
		Out:        out,
		log:        log,
	}
}

// Show writes both versions to the scratch files and runs the diff tool on
// them. The files are left behind so the operator can re-run the diff after
// this process exits. Nothing here blocks the update: failures are logged
// and skipped.
func (d *Differ) Show(remote, local string) {
	if err := os.WriteFile(d.RemotePath, []byte(remote), 0o644); err != nil {
		d.log.Warn().Err(err).Msg("cannot write remote scratch file, skipping diff")
		return
	}
	if err := os.WriteFile(d.LocalPath, []byte(local), 0o644); err != nil {
		d.log.Warn().Err(err).Msg("cannot write local scratch file, skipping diff")
		return
	}

	d.log.Info().Msgf("%s %s %s", d.Tool, d.RemotePath, d.LocalPath)
	cmd := exec.Command(d.Tool, d.RemotePath, d.LocalPath)
	cmd.Stdout = d.Out
	cmd.Stderr = d.Out
	err := cmd.Run()
	if err == nil {
		return
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		// diff tools exit nonzero when the inputs differ
		return
	}
	d.log.Warn().Err(err).Msgf("%s not available, falling back to inline diff", d.Tool)
	d.inline(remote, local)
}

func (d *Differ) inline(remote, local string) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(remote),
		B:        difflib.SplitLines(local),
		FromFile: d.RemotePath,
		ToFile:   d.LocalPath,
		Context:  3,
	})
	if err != nil {
		d.log.Warn().Err(err).Msg("cannot render diff")
		return
	}
	fmt.Fprint(d.Out, text)
}
