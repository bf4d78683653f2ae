package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

func testNormalizer() *Normalizer {
	n := NewNormalizer(NewResolver(nil), config.NormalizeConfig{})
	return n.WithClock(func() time.Time { return testNow })
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeFullRow(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{
		"id":            "7",
		"Дата":          "15.03.2024",
		"Товар":         "Чайник",
		"Артикул":       "A-42",
		"Категория":     "Техника",
		"Количество":    "5",
		"Цена":          "1000",
		"Выручка":       "5000",
		"Себестоимость": "3000",
		"Скидка":        "10",
		"Тип клиента":   "опт",
		"Регион":        "Москва",
		"Канал":         "интернет-магазин",
	}, 0)

	if rec.ID != "7" {
		t.Fatalf("id = %q", rec.ID)
	}
	if rec.Date != "2024-03-15" {
		t.Fatalf("date = %q", rec.Date)
	}
	if rec.ProductName != "Чайник" || rec.ProductID != "A-42" {
		t.Fatalf("product = %q / %q", rec.ProductName, rec.ProductID)
	}
	if rec.Quantity != 5 || rec.UnitPrice != 1000 || rec.Revenue != 5000 || rec.CostPrice != 3000 {
		t.Fatalf("monetary fields = %d / %v / %v / %v", rec.Quantity, rec.UnitPrice, rec.Revenue, rec.CostPrice)
	}
	if rec.Profit != 2000 || !almostEqual(rec.Profitability, 40) || !almostEqual(rec.Margin, 40) {
		t.Fatalf("profit = %v, profitability = %v, margin = %v", rec.Profit, rec.Profitability, rec.Margin)
	}
	if !almostEqual(rec.Discount, 0.1) {
		t.Fatalf("discount = %v", rec.Discount)
	}
	if !almostEqual(rec.VAT, 1000) {
		t.Fatalf("vat = %v, want 20%% of revenue", rec.VAT)
	}
	if rec.CustomerType != domain.CustomerWholesale {
		t.Fatalf("customer type = %q", rec.CustomerType)
	}
	if rec.SalesChannel != domain.ChannelOnline {
		t.Fatalf("sales channel = %q", rec.SalesChannel)
	}
	if rec.ShippingStatus != domain.ShippingStatusDelivered {
		t.Fatalf("shipping status = %q", rec.ShippingStatus)
	}
	if rec.Year != 2024 {
		t.Fatalf("year = %d", rec.Year)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{}, 2)

	if rec.ID != "3" {
		t.Fatalf("id = %q, want positional 3", rec.ID)
	}
	if rec.ProductName != "Товар 3" {
		t.Fatalf("product name = %q", rec.ProductName)
	}
	if rec.Category != "Без категории" {
		t.Fatalf("category = %q", rec.Category)
	}
	if rec.Region != "Не указан" {
		t.Fatalf("region = %q", rec.Region)
	}
	if rec.Quantity != 1 {
		t.Fatalf("quantity = %d", rec.Quantity)
	}
	if rec.CustomerType != domain.CustomerIndividual {
		t.Fatalf("customer type = %q", rec.CustomerType)
	}
	if rec.SalesChannel != domain.ChannelOffline {
		t.Fatalf("sales channel = %q", rec.SalesChannel)
	}
	if rec.Date != testNow.Format("2006-01-02") {
		t.Fatalf("date = %q, want fallback to current date", rec.Date)
	}
}

func TestNormalizeBackfillRevenueFromPrice(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{
		"quantity":   "4",
		"unit_price": "250",
	}, 0)

	if rec.Revenue != 1000 {
		t.Fatalf("revenue = %v, want price*qty", rec.Revenue)
	}
	if !almostEqual(rec.CostPrice, 600) {
		t.Fatalf("cost = %v, want 60%% of revenue", rec.CostPrice)
	}
}

func TestNormalizeBackfillPriceFromRevenue(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{
		"quantity": "4",
		"revenue":  "2000",
	}, 0)

	if rec.UnitPrice != 500 {
		t.Fatalf("unit price = %v, want revenue/qty", rec.UnitPrice)
	}
}

func TestNormalizeRevenueFloor(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{"quantity": "2"}, 0)

	if rec.Revenue != 1000 {
		t.Fatalf("revenue = %v, want floor 1000", rec.Revenue)
	}
	if rec.UnitPrice != 500 {
		t.Fatalf("unit price = %v, want derived from floored revenue", rec.UnitPrice)
	}
	if !almostEqual(rec.CostPrice, 600) {
		t.Fatalf("cost = %v, want derived from floored revenue", rec.CostPrice)
	}
	if rec.Profit != 400 {
		t.Fatalf("profit = %v", rec.Profit)
	}
}

func TestNormalizeExplicitVATWins(t *testing.T) {
	t.Parallel()

	rec := testNormalizer().Normalize(RawRow{
		"revenue": "1000",
		"vat":     "50",
	}, 0)

	if rec.VAT != 50 {
		t.Fatalf("vat = %v, want explicit 50", rec.VAT)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	t.Parallel()

	records := testNormalizer().NormalizeAll([]RawRow{
		{"product_name": "Первый"},
		{"product_name": "Второй"},
	})

	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].ProductName != "Первый" || records[1].ProductName != "Второй" {
		t.Fatalf("order not preserved: %q, %q", records[0].ProductName, records[1].ProductName)
	}
	if records[0].ID != "1" || records[1].ID != "2" {
		t.Fatalf("positional ids wrong: %q, %q", records[0].ID, records[1].ID)
	}
}
