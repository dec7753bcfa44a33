package article

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Header is the metadata block at the top of an article file.
type Header struct {
	Title    string
	URL      string
	RemoteID string
	Tags     []string
}

const (
	startMarker = "<!--"
	endMarker   = "-->"
)

var (
	// ErrMalformedHeader means the document does not open with the start
	// marker, or a metadata line has no colon.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrUnterminatedHeader means the end marker was never found.
	ErrUnterminatedHeader = errors.New("unterminated header")
)

// Parse splits the document into its metadata header and the article body
// that follows the end marker. The body is returned verbatim, blank lines
// included.
func Parse(text string, log zerolog.Logger) (*Header, string, error) {
	lines := strings.Split(text, "\n")
	if lines[0] != startMarker {
		return nil, "", fmt.Errorf("%w: line 1: not %s; was: %q", ErrMalformedHeader, startMarker, lines[0])
	}

	h := &Header{}
	for n := 2; n <= len(lines); n++ {
		line := lines[n-1]
		log.Debug().Int("line", n).Msg(line)
		if line == endMarker {
			return h, strings.Join(lines[n:], "\n"), nil
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, "", fmt.Errorf("%w: line %d: no colon", ErrMalformedHeader, n)
		}
		h.set(n, strings.TrimSpace(key), strings.TrimSpace(value), log)
	}

	return nil, "", fmt.Errorf("%w: %s not found", ErrUnterminatedHeader, endMarker)
}

func (h *Header) set(line int, key, value string, log zerolog.Logger) {
	switch key {
	case "0file":
		// informational only
	case "0title":
		h.Title = value
	case "0url":
		if strings.Contains(value, "TODO") {
			log.Debug().Int("line", line).Msg("0url not assigned yet")
			return
		}
		h.URL = value
		h.RemoteID = value[strings.LastIndex(value, "/")+1:]
	case "tags":
		parts := strings.Split(value, " ")
		h.Tags = make([]string, len(parts))
		for i, t := range parts {
			h.Tags[i] = strings.TrimSpace(t)
		}
	default:
		log.Warn().Int("line", line).Msgf("skip: %s: %s", key, value)
	}
}
