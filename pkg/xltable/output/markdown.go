package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// WriteMarkdown writes t as a GitHub-flavored pipe table.
func WriteMarkdown(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	names := t.Names()

	writeLine(bw, names)
	sep := make([]string, len(names))
	for i := range sep {
		sep[i] = "---"
	}
	writeLine(bw, sep)

	for _, row := range t.Rows() {
		values := row.Values()
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = table.FormatValue(v)
		}
		writeLine(bw, cells)
	}
	return bw.Flush()
}

func writeLine(bw *bufio.Writer, cells []string) {
	bw.WriteString("|")
	for _, c := range cells {
		bw.WriteString(" ")
		bw.WriteString(cellEscaper.Replace(c))
		bw.WriteString(" |")
	}
	bw.WriteString("\n")
}
