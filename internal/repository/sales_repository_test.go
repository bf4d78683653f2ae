package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/salesight/salesight/internal/domain"
)

func seedRecords(t *testing.T, repo *SalesRepository, userID string, records ...domain.SalesRecord) []domain.SalesRecord {
	t.Helper()
	appended, err := repo.Append(context.Background(), userID, records)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	return appended
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	first := seedRecords(t, repo, "u1",
		domain.SalesRecord{ProductName: "Чайник"},
		domain.SalesRecord{ProductName: "Кружка"},
	)
	if first[0].ID != "1" || first[1].ID != "2" {
		t.Fatalf("first batch ids = %q, %q", first[0].ID, first[1].ID)
	}

	second := seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "Стол"})
	if second[0].ID != "3" {
		t.Fatalf("second batch id = %q, want continuation", second[0].ID)
	}

	all, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records", len(all))
	}
}

func TestAppendDefaultsProductID(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())

	appended := seedRecords(t, repo, "u1",
		domain.SalesRecord{ProductName: "Чайник"},
		domain.SalesRecord{ProductName: "Кружка", ProductID: "A-1"},
	)
	if appended[0].ProductID != "prod-1" {
		t.Fatalf("empty product id became %q, want prod-1", appended[0].ProductID)
	}
	if appended[1].ProductID != "A-1" {
		t.Fatalf("explicit product id overwritten: %q", appended[1].ProductID)
	}
}

func TestAppendIgnoresNonNumericIDsForNumbering(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())

	seedRecords(t, repo, "u1",
		domain.SalesRecord{ProductName: "A"},
		domain.SalesRecord{ProductName: "B"},
	)
	// Incoming ids are always reassigned, numeric or not.
	appended := seedRecords(t, repo, "u1", domain.SalesRecord{ID: "custom-99", ProductName: "C"})
	if appended[0].ID != "3" {
		t.Fatalf("id = %q, want reassigned 3", appended[0].ID)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "A"})
	seedRecords(t, repo, "u2", domain.SalesRecord{ProductName: "B"})

	u1, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(u1) != 1 || u1[0].ProductName != "A" {
		t.Fatalf("u1 sees %+v", u1)
	}

	u2First, err := repo.Append(ctx, "u2", []domain.SalesRecord{{ProductName: "C"}})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if u2First[0].ID != "2" {
		t.Fatalf("u2 numbering leaked across users: %q", u2First[0].ID)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "A"})
	if err := repo.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	records, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records remain after clear: %+v", records)
	}

	// Numbering restarts on an empty set.
	appended := seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "B"})
	if appended[0].ID != "1" {
		t.Fatalf("id after clear = %q, want 1", appended[0].ID)
	}
}

func TestViewConjunctiveFilter(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	seedRecords(t, repo, "u1",
		domain.SalesRecord{ProductName: "A", Date: "2024-01-10", Region: "Москва", Category: "Техника", CustomerType: domain.CustomerRetail},
		domain.SalesRecord{ProductName: "B", Date: "2024-02-10", Region: "Московская область", Category: "Техника", CustomerType: domain.CustomerWholesale},
		domain.SalesRecord{ProductName: "C", Date: "2024-03-10", Region: "Казань", Category: "Мебель", CustomerType: domain.CustomerRetail},
	)

	records, err := repo.View(ctx, "u1", domain.FilterCriteria{
		StartDate: "2024-01-01",
		EndDate:   "2024-02-28",
		Region:    "моск",
		Category:  "тех",
	}, domain.SortSpec{})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	records, err = repo.View(ctx, "u1", domain.FilterCriteria{
		CustomerType: string(domain.CustomerRetail),
	}, domain.SortSpec{})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("customer type filter got %d records, want 2", len(records))
	}
}

func TestViewSorting(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	seedRecords(t, repo, "u1",
		domain.SalesRecord{ProductName: "Яблоко", Revenue: 100},
		domain.SalesRecord{ProductName: "Банан", Revenue: 300},
		domain.SalesRecord{ProductName: "Вишня", Revenue: 200},
	)

	byRevenue, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{Field: "revenue", Direction: domain.SortDesc})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if byRevenue[0].Revenue != 300 || byRevenue[2].Revenue != 100 {
		t.Fatalf("revenue desc order wrong: %v, %v, %v", byRevenue[0].Revenue, byRevenue[1].Revenue, byRevenue[2].Revenue)
	}

	byName, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{Field: "product_name", Direction: domain.SortAsc})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if byName[0].ProductName != "Банан" {
		t.Fatalf("name asc order wrong: %q first", byName[0].ProductName)
	}

	// Ids sort numerically, so 10 follows 9 rather than 1.
	for i := 0; i < 7; i++ {
		seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "X"})
	}
	byID, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{Field: "id", Direction: domain.SortAsc})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if byID[len(byID)-1].ID != "10" {
		t.Fatalf("last id = %q, want 10", byID[len(byID)-1].ID)
	}

	// No direction means append order.
	natural, err := repo.View(ctx, "u1", domain.FilterCriteria{}, domain.SortSpec{Field: "revenue", Direction: domain.SortNone})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if natural[0].ProductName != "Яблоко" {
		t.Fatalf("natural order broken: %q first", natural[0].ProductName)
	}
}

func TestVersionChangesOnWrites(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	v0, err := repo.Version(ctx, "u1")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	seedRecords(t, repo, "u1", domain.SalesRecord{ProductName: "A"})
	v1, err := repo.Version(ctx, "u1")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if v1 == v0 {
		t.Fatal("version unchanged after append")
	}

	if err := repo.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	v2, err := repo.Version(ctx, "u1")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if v2 == v1 {
		t.Fatal("version unchanged after clear")
	}
}

func TestEmptyUserIDRejected(t *testing.T) {
	t.Parallel()

	repo := NewSalesRepository(NewMemoryStore())
	ctx := context.Background()

	if _, err := repo.Append(ctx, "", nil); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("append error = %v", err)
	}
	if _, err := repo.View(ctx, "", domain.FilterCriteria{}, domain.SortSpec{}); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("view error = %v", err)
	}
	if err := repo.Clear(ctx, ""); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("clear error = %v", err)
	}
	if _, err := repo.Version(ctx, ""); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("version error = %v", err)
	}
}
