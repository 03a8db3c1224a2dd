package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// EncodeWriter returns a writer that transcodes UTF-8 text written to it into
// the named charset (any WHATWG label such as "shift_jis" or
// "windows-1252"). An empty name or UTF-8 returns w unchanged. The caller
// must Close the returned writer to flush pending bytes; closing does not
// close w.
func EncodeWriter(w io.Writer, charset string) (io.WriteCloser, error) {
	if charset == "" {
		return nopCloser{w}, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if name, _ := htmlindex.Name(enc); strings.EqualFold(name, "utf-8") {
		return nopCloser{w}, nil
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
