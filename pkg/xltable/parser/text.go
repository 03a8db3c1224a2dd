package parser

import (
	"bufio"
	"io"
	"strings"
)

// Text readers fold "\r\n" inside quoted fields into "\n", so carriage
// returns are percent-escaped on the way out. '%' is escaped as well to keep
// the mapping reversible.
var (
	fieldEscaper   = strings.NewReplacer(`"`, `""`, "%", "%25", "\r", "%0D")
	fieldUnescaper = strings.NewReplacer("%0D", "\r", "%25", "%")
)

// WriteQuoted serializes rows as comma-delimited text with every field
// quoted. Embedded quotes are doubled and carriage returns escaped; read
// fields back through UnescapeField to restore them.
func WriteQuoted(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('"'); err != nil {
				return err
			}
			if _, err := fieldEscaper.WriteString(bw, field); err != nil {
				return err
			}
			if err := bw.WriteByte('"'); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// UnescapeField restores a field written by WriteQuoted after the text
// reader removed the quoting.
func UnescapeField(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	return fieldUnescaper.Replace(s)
}
