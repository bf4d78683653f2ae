package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/salesight/salesight/internal/domain"
)

var recordHeaders = []string{
	"id", "date", "product_name", "product_id", "category", "quantity",
	"unit_price", "revenue", "cost_price", "profit", "profitability",
	"discount", "vat", "margin", "customer_type", "region", "sales_channel",
	"shipping_status", "year",
}

// RecordsCSV renders the record set as a flat CSV document.
func RecordsCSV(records []domain.SalesRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(recordHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			r.ProductName,
			r.ProductID,
			r.Category,
			strconv.Itoa(r.Quantity),
			formatFloat(r.UnitPrice),
			formatFloat(r.Revenue),
			formatFloat(r.CostPrice),
			formatFloat(r.Profit),
			formatFloat(r.Profitability),
			formatFloat(r.Discount),
			formatFloat(r.VAT),
			formatFloat(r.Margin),
			string(r.CustomerType),
			r.Region,
			string(r.SalesChannel),
			r.ShippingStatus,
			strconv.Itoa(r.Year),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
