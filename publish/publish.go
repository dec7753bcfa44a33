// Package publish submits a parsed article to the remote API, guarded by an
// interactive confirmation prompt.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/wataash/qiita-publisher/article"
	"github.com/wataash/qiita-publisher/qiita"
)

// ErrAborted means the operator declined the confirmation prompt. No
// mutating request has been made when it is returned.
var ErrAborted = errors.New("aborted by operator")

// API is the subset of the Qiita client the publisher needs.
// *qiita.Client implements it.
type API interface {
	CreateItem(ctx context.Context, item *qiita.Item) (*qiita.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*qiita.ItemResponse, error)
	UpdateItem(ctx context.Context, id string, item *qiita.Item) (*qiita.ItemResponse, error)
}

// Publisher submits a document as a new or updated article.
type Publisher struct {
	API    API
	Gate   *Gate
	Differ *Differ
	Out    io.Writer
	log    zerolog.Logger
}

// New creates a publisher writing operator-facing output to out.
func New(api API, gate *Gate, differ *Differ, out io.Writer, log zerolog.Logger) *Publisher {
	return &Publisher{API: api, Gate: gate, Differ: differ, Out: out, log: log}
}

// Create submits the document as a new article and prints the assigned URL
// in `0url:` form so it can be pasted back into the header block.
func (p *Publisher) Create(ctx context.Context, h *article.Header, body string) error {
	if !p.Gate.Confirm(h, body, "create") {
		return ErrAborted
	}
	r, err := p.API.CreateItem(ctx, payload(h, body))
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Out, "0url: %s\n", r.URL)
	p.log.Info().Str("url", r.URL).Msg("created")
	return nil
}

// Update fetches the remote article, shows the delta against the local
// document, and patches the remote on approval. The fetch happens before
// confirmation; it is read-only.
func (p *Publisher) Update(ctx context.Context, h *article.Header, body string) error {
	remote, err := p.API.GetItem(ctx, h.RemoteID)
	if err != nil {
		return err
	}
	p.Differ.Show(remote.Body, body)

	if !p.Gate.Confirm(h, body, "update") {
		return ErrAborted
	}
	r, err := p.API.UpdateItem(ctx, h.RemoteID, payload(h, body))
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Out, "0url: %s\n", r.URL)
	p.log.Info().Str("url", r.URL).Msg("updated")
	return nil
}

func payload(h *article.Header, body string) *qiita.Item {
	tags := make([]qiita.Tag, 0, len(h.Tags))
	for _, t := range h.Tags {
		tags = append(tags, qiita.Tag{Name: t, Versions: []string{}})
	}
	return &qiita.Item{Body: body, Tags: tags, Title: h.Title}
}
