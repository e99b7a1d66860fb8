package services

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"budgetbook/internal/config"
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

var csvHeader = []string{"Date", "Name", "Type", "Amount", "Category", "Frequency"}

type csvExporter struct {
	dateLayout string
	comma      rune
}

// NewCSVExporter creates a new CSVExporterInterface instance using the
// configured date layout and field delimiter.
func NewCSVExporter(display config.DisplayConfig) CSVExporterInterface {
	e := &csvExporter{dateLayout: display.DateLayout, comma: display.CSVComma}
	if e.dateLayout == "" {
		e.dateLayout = "02/01/2006"
	}
	if e.comma == 0 {
		e.comma = ';'
	}
	return e
}

// Export writes the ledger in the spreadsheet-import dialect: fields
// delimited by the configured rune, every field quoted, amounts with a
// comma decimal separator and dates in the configured layout. encoding/csv
// is not used because it only quotes fields that need it, and the consuming
// spreadsheet template expects every field quoted.
func (e *csvExporter) Export(w io.Writer, transactions []models.Transaction) error {
	bw := bufio.NewWriter(w)

	if err := e.writeRow(bw, csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range transactions {
		t := &transactions[i]

		date := ""
		if !t.Date.IsZero() {
			date = t.Date.Format(e.dateLayout)
		}

		row := []string{
			date,
			t.Name,
			t.Type,
			numeric.FormatComma(t.Amount),
			t.Category,
			t.Frequency,
		}
		if err := e.writeRow(bw, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return bw.Flush()
}

func (e *csvExporter) writeRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.WriteRune(e.comma); err != nil {
				return err
			}
		}
		quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		if _, err := w.WriteString(quoted); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
