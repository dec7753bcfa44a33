package publish

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wataash/qiita-publisher/article"
)

const previewLen = 50

// Gate asks the operator to approve a pending operation.
type Gate struct {
	In  io.Reader
	log zerolog.Logger
}

// NewGate creates a gate reading approval from in, usually stdin.
func NewGate(in io.Reader, log zerolog.Logger) *Gate {
	return &Gate{In: in, log: log}
}

// Confirm shows a summary of what is about to be submitted and blocks on a
// single line of input. Only y/yes (any case) accepts; anything else,
// including EOF, declines.
func (g *Gate) Confirm(h *article.Header, body, op string) bool {
	g.log.Info().Msgf("title:   %s", h.Title)
	g.log.Info().Msgf("url:     %s", h.URL)
	g.log.Info().Msgf("tags:    %v", h.Tags)
	g.log.Info().Msgf("content: %s", preview(body, true))
	g.log.Info().Msgf("         ... %s", preview(body, false))
	g.log.Info().Msgf("#%s? [y/N]", op)

	line, _ := bufio.NewReader(g.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	g.log.Warn().Msg("abort")
	return false
}

// preview returns the first (or last) previewLen characters of s with
// newlines collapsed to spaces. Truncation is by rune so a multibyte
// character at the boundary is never split.
func preview(s string, head bool) string {
	r := []rune(s)
	if len(r) > previewLen {
		if head {
			r = r[:previewLen]
		} else {
			r = r[len(r)-previewLen:]
		}
		s = string(r)
	}
	return strings.ReplaceAll(s, "\n", " ")
}
