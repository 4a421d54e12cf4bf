package delimited

import (
	"bufio"
	"fmt"
	"io"
)

// WriteRows writes every row as one formatted line terminated by CRLF, which
// spreadsheet tools open without an import dialog.
func WriteRows(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for i, row := range rows {
		if _, err := bw.WriteString(FormatLine(row) + "\r\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
