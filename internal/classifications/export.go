package classifications

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// exportHeader is the fixed CSV column set, in order.
var exportHeader = []string{
	"Product Name",
	"HS Code",
	"Chapter",
	"Confidence",
	"Dual Use",
	"Customer",
	"Timestamp",
}

// ExportCSV renders records as CSV with the fixed export columns.
// Confidence renders as "NN%", the dual-use flag as Yes/No, and the
// creation timestamp in RFC 3339.
func ExportCSV(records []Classification) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for _, c := range records {
		var customer string
		if c.CustomerName != nil {
			customer = *c.CustomerName
		}

		dualUse := "No"
		if c.IsDualUse {
			dualUse = "Yes"
		}

		row := []string{
			c.ProductName,
			c.HSCode,
			c.Chapter,
			strconv.Itoa(c.Confidence) + "%",
			dualUse,
			customer,
			c.CreatedAt.Format(time.RFC3339),
		}

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}

	return buf.Bytes(), nil
}
