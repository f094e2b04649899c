package rendering

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the header and rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return &RenderError{Format: "csv", Message: "failed to write header", Cause: err}
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return &RenderError{Format: "csv", Message: "failed to write row", Cause: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &RenderError{Format: "csv", Message: "flush failed", Cause: err}
	}
	return nil
}
