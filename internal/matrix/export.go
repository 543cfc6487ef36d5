package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Format is an export format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

const (
	reportTitle    = "Antibiotic Effectiveness Matrix"
	filenamePrefix = "antibiotic_effectiveness_matrix_"
)

// Report is the structured payload handed to a document renderer.
type Report struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Matrix   *Matrix  `json:"matrix"`
	Summary  Metadata `json:"summary"`
}

// Export is either a CSV table (Headers and Rows) or a Report, plus the suggested filename.
type Export struct {
	Format   Format     `json:"format"`
	Filename string     `json:"filename"`
	Headers  []string   `json:"headers,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	Report   *Report    `json:"report,omitempty"`
}

// GenerateExport prepares m for download. FormatCSV yields one line per row with the
// pathogen name, its raw gram status and the display text of each cell in column
// order. Every other format yields a Report with a .pdf filename. now stamps the
// filename (UTC date) and the report subtitle.
func GenerateExport(m *Matrix, format Format, now time.Time) *Export {
	if format == FormatCSV {
		headers := make([]string, 0, len(m.Columns)+2)
		headers = append(headers, "Pathogen", "Gram Status")
		for _, c := range m.Columns {
			headers = append(headers, c.Name)
		}

		rows := make([][]string, 0, len(m.Rows))
		for r, row := range m.Rows {
			line := make([]string, 0, len(headers))
			line = append(line, row.Name, string(row.GramStatus))
			for c := range m.Columns {
				text := "N/A"
				if cell, ok := m.cellAt(r, c); ok {
					text = cell.DisplayText
				}
				line = append(line, text)
			}
			rows = append(rows, line)
		}

		return &Export{
			Format:   FormatCSV,
			Filename: Filename(FormatCSV, now),
			Headers:  headers,
			Rows:     rows,
		}
	}

	return &Export{
		Format:   FormatPDF,
		Filename: Filename(FormatPDF, now),
		Report: &Report{
			ID:       uuid.New().String(),
			Title:    reportTitle,
			Subtitle: "Generated on " + now.Format("1/2/2006"),
			Matrix:   m,
			Summary:  m.Metadata,
		},
	}
}

// Filename returns antibiotic_effectiveness_matrix_<YYYY-MM-DD>.<format> for the UTC date of now.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("%s%s.%s", filenamePrefix, now.UTC().Format("2006-01-02"), format)
}

// WriteCSV writes the header line and rows. It fails for report exports.
func (e *Export) WriteCSV(w io.Writer) error {
	if e.Format != FormatCSV {
		return fmt.Errorf("export format %s has no CSV form", e.Format)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(e.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(e.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
