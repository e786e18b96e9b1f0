package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// WriteCSV renders export rows with a fixed header.
func WriteCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Student Name", "Email", "Date", "Status"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.StudentName, row.StudentEmail, row.Date, row.Status}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
