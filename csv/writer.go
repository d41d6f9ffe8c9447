package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/DefiantLabs/course-platform/catalog"
)

var headers = []string{"id", "uuid", "title", "creator", "priceInYd", "purchaseCount", "chain_id", "onChain", "created_at"}

// RowToCsv builds a single row of data in the format expected by 'headers'
func RowToCsv(entry catalog.Entry) []string {
	onChain := "false"
	if entry.OnChain {
		onChain = "true"
	}

	return []string{
		entry.ID,
		entry.UUID,
		entry.Title,
		entry.Creator.ID,
		entry.PriceInYd,
		entry.PurchaseCount,
		entry.ChainID,
		onChain,
		FormatDatetime(entry.CreatedAt.UTC()),
	}
}

// ToCsv writes the header and one row per catalog entry to a byte buffer
func ToCsv(entries []catalog.Entry) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		return b, err
	}

	for _, entry := range entries {
		if err := w.Write(RowToCsv(entry)); err != nil {
			return b, err
		}
	}

	// Write any buffered data to the underlying writer
	w.Flush()

	return b, w.Error()
}
