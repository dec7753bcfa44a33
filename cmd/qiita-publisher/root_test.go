package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wataash/qiita-publisher/article"
	"github.com/wataash/qiita-publisher/publish"
	"github.com/wataash/qiita-publisher/qiita"
)

// executeRoot runs rootCmd with the given arguments and restores the
// package-level flag state afterwards, so tests can run in any order.
func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		flagDryRun = false
		flagToken = ""
		flagQuiet = false
		flagVerbose = 0
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestQuietAndVerboseAreMutuallyExclusive(t *testing.T) {
	t.Setenv("QIITA_TOKEN", "sekrit")
	err := executeRoot(t, "-q", "-v", "article.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiet")
	assert.Contains(t, err.Error(), "verbose")
}

func TestMissingTokenIsFatal(t *testing.T) {
	t.Setenv("QIITA_TOKEN", "")
	err := executeRoot(t, "article.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QIITA_TOKEN")
}

// recordingAPI counts which mutating endpoint ran.
type recordingAPI struct {
	creates int
	updates int
}

func (r *recordingAPI) CreateItem(ctx context.Context, item *qiita.Item) (*qiita.ItemResponse, error) {
	r.creates++
	return &qiita.ItemResponse{URL: "https://qiita.com/wataash/items/new123"}, nil
}

func (r *recordingAPI) GetItem(ctx context.Context, id string) (*qiita.ItemResponse, error) {
	return &qiita.ItemResponse{Body: "remote"}, nil
}

func (r *recordingAPI) UpdateItem(ctx context.Context, id string, item *qiita.Item) (*qiita.ItemResponse, error) {
	r.updates++
	return &qiita.ItemResponse{URL: "https://qiita.com/wataash/items/" + id}, nil
}

func newDispatchPublisher(t *testing.T, api publish.API) *publish.Publisher {
	t.Helper()
	differ := publish.NewDiffer(io.Discard, zerolog.Nop())
	differ.Tool = "no-such-diff-tool"
	dir := t.TempDir()
	differ.RemotePath = filepath.Join(dir, "remote")
	differ.LocalPath = filepath.Join(dir, "local")
	gate := publish.NewGate(strings.NewReader("y\n"), zerolog.Nop())
	return publish.New(api, gate, differ, io.Discard, zerolog.Nop())
}

func TestDispatchRoutesToCreate(t *testing.T) {
	api := &recordingAPI{}
	pub := newDispatchPublisher(t, api)

	err := dispatch(context.Background(), pub, &article.Header{Title: "Hello"}, "body")
	require.NoError(t, err)
	assert.Equal(t, 1, api.creates)
	assert.Equal(t, 0, api.updates)
}

func TestDispatchRoutesToUpdate(t *testing.T) {
	api := &recordingAPI{}
	pub := newDispatchPublisher(t, api)
	h := &article.Header{Title: "Hello", RemoteID: "abc123"}

	err := dispatch(context.Background(), pub, h, "body")
	require.NoError(t, err)
	assert.Equal(t, 0, api.creates)
	assert.Equal(t, 1, api.updates)
}
