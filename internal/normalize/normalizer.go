package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

// Normalizer turns raw rows into canonical sales records. Missing fields get
// documented defaults and derived monetary fields are backfilled, so a row
// never fails normalization.
type Normalizer struct {
	resolver *Resolver
	cfg      config.NormalizeConfig
	now      func() time.Time
}

func NewNormalizer(resolver *Resolver, cfg config.NormalizeConfig) *Normalizer {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	if cfg.CostRatio <= 0 {
		cfg.CostRatio = 0.6
	}
	if cfg.RevenueFloor <= 0 {
		cfg.RevenueFloor = 1000
	}
	if cfg.VATRatio <= 0 {
		cfg.VATRatio = 0.2
	}
	return &Normalizer{
		resolver: resolver,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock fixes the normalizer's notion of "now" for the unparseable-date
// fallback. Used by tests.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Normalize builds the canonical record for one raw row. index is the row's
// zero-based position in the batch and seeds positional defaults.
func (n *Normalizer) Normalize(row RawRow, index int) domain.SalesRecord {
	rec := domain.SalesRecord{
		ID:          n.stringField(row, "id", strconv.Itoa(index+1)),
		Date:        ParseDate(n.rawField(row, "date"), n.now()),
		ProductName: n.stringField(row, "product_name", fmt.Sprintf("Товар %d", index+1)),
		ProductID:   n.stringField(row, "product_id", strconv.Itoa(index+1)),
		Category:    n.stringField(row, "category", "Без категории"),
		Region:      n.stringField(row, "region", "Не указан"),
		Quantity:    ParseInteger(n.rawField(row, "quantity"), 1),
		Discount:    ParseDiscount(n.rawField(row, "discount")),
	}

	rec.CustomerType = domain.ParseCustomerType(n.stringField(row, "customer_type", string(domain.CustomerIndividual)))
	rec.SalesChannel = domain.ParseSalesChannel(n.stringField(row, "sales_channel", string(domain.ChannelOffline)))
	rec.ShippingStatus = domain.ShippingStatusDelivered

	revenue := ParseNumber(n.rawField(row, "revenue"), 0)
	unitPrice := ParseNumber(n.rawField(row, "unit_price"), 0)
	costPrice := ParseNumber(n.rawField(row, "cost_price"), 0)

	// Backfill order matters: each step only fires when the previous ones
	// left the slot empty.
	if revenue == 0 && unitPrice != 0 && rec.Quantity != 0 {
		revenue = unitPrice * float64(rec.Quantity)
	}
	if unitPrice == 0 && revenue != 0 && rec.Quantity != 0 {
		unitPrice = revenue / float64(rec.Quantity)
	}
	if costPrice == 0 && revenue != 0 {
		costPrice = revenue * n.cfg.CostRatio
	}
	if revenue == 0 {
		// Floor keeps downstream share computations away from zero totals.
		revenue = n.cfg.RevenueFloor
	}
	if unitPrice == 0 {
		unitPrice = revenue / float64(rec.Quantity)
	}
	if costPrice == 0 {
		costPrice = revenue * n.cfg.CostRatio
	}

	rec.Revenue = revenue
	rec.UnitPrice = unitPrice
	rec.CostPrice = costPrice

	rec.Profit = revenue - costPrice
	if revenue > 0 {
		rec.Profitability = rec.Profit / revenue * 100
	}
	rec.Margin = rec.Profitability
	rec.VAT = ParseNumber(n.rawField(row, "vat"), revenue*n.cfg.VATRatio)

	if t, err := time.Parse("2006-01-02", rec.Date); err == nil {
		rec.Year = t.Year()
	}

	return rec
}

// NormalizeAll maps a batch of raw rows to records, preserving order.
func (n *Normalizer) NormalizeAll(rows []RawRow) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, n.Normalize(row, i))
	}
	return records
}

func (n *Normalizer) rawField(row RawRow, field string) interface{} {
	v, ok := n.resolver.Resolve(row, field)
	if !ok {
		return nil
	}
	return v
}

func (n *Normalizer) stringField(row RawRow, field, def string) string {
	v, ok := n.resolver.Resolve(row, field)
	if !ok {
		return def
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return def
	}
	return s
}
