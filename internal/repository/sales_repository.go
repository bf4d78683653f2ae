package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/domain"
)

// SalesRepository owns the canonical record set per user. Appends against
// the same user are serialized so id assignment never races: "read current
// max id, then write the extended set" runs as one critical section.
type SalesRepository struct {
	store Store

	mu    sync.Mutex
	users map[string]*userSet
}

type userSet struct {
	mu      sync.Mutex
	loaded  bool
	records []domain.SalesRecord
	version int64
}

func NewSalesRepository(store Store) *SalesRepository {
	return &SalesRepository{
		store: store,
		users: make(map[string]*userSet),
	}
}

func (r *SalesRepository) userSetFor(userID string) *userSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.users[userID]
	if !ok {
		set = &userSet{}
		r.users[userID] = set
	}
	return set
}

func (r *SalesRepository) ensureLoaded(ctx context.Context, userID string, set *userSet) error {
	if set.loaded {
		return nil
	}
	records, err := r.store.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load record set: %w", err)
	}
	set.records = records
	set.loaded = true
	return nil
}

// Append assigns ascending ids continuing from the highest numeric id
// already present, merges the new records in and persists the full set.
func (r *SalesRepository) Append(ctx context.Context, userID string, records []domain.SalesRecord) ([]domain.SalesRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	set := r.userSetFor(userID)
	set.mu.Lock()
	defer set.mu.Unlock()

	if err := r.ensureLoaded(ctx, userID, set); err != nil {
		return nil, err
	}

	startID := nextID(set.records)
	appended := make([]domain.SalesRecord, len(records))
	for i, rec := range records {
		rec.ID = strconv.FormatInt(startID+int64(i), 10)
		if rec.ProductID == "" {
			rec.ProductID = "prod-" + rec.ID
		}
		appended[i] = rec
	}

	merged := make([]domain.SalesRecord, 0, len(set.records)+len(appended))
	merged = append(merged, set.records...)
	merged = append(merged, appended...)

	if err := r.store.SaveAll(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("failed to persist record set: %w", err)
	}

	set.records = merged
	set.version++
	log.Info().Str("user", userID).Int("appended", len(appended)).Int("total", len(merged)).Msg("records appended")

	return appended, nil
}

// Clear removes the user's record set and its persisted form.
func (r *SalesRepository) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrAuthRequired
	}

	set := r.userSetFor(userID)
	set.mu.Lock()
	defer set.mu.Unlock()

	if err := r.store.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete record set: %w", err)
	}

	set.records = nil
	set.loaded = true
	set.version++
	return nil
}

// View returns the filtered, sorted records. Filtering is conjunctive and
// sorting honors the three-state toggle: an empty direction means source
// (append) order.
func (r *SalesRepository) View(ctx context.Context, userID string, filter domain.FilterCriteria, sortSpec domain.SortSpec) ([]domain.SalesRecord, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	set := r.userSetFor(userID)
	set.mu.Lock()
	defer set.mu.Unlock()

	if err := r.ensureLoaded(ctx, userID, set); err != nil {
		return nil, err
	}

	filtered := applyFilter(set.records, filter)
	if sortSpec.Field != "" && sortSpec.Direction != domain.SortNone {
		sortRecords(filtered, sortSpec)
	}
	return filtered, nil
}

// Version identifies the current state of a user's record set; it changes
// on every append and clear, so it keys snapshot caches.
func (r *SalesRepository) Version(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrAuthRequired
	}
	set := r.userSetFor(userID)
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.version, nil
}

// nextID returns max numeric id + 1, ignoring non-numeric ids.
func nextID(records []domain.SalesRecord) int64 {
	var max int64
	for _, rec := range records {
		if id, err := strconv.ParseInt(rec.ID, 10, 64); err == nil && id > max {
			max = id
		}
	}
	return max + 1
}

func applyFilter(records []domain.SalesRecord, f domain.FilterCriteria) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0, len(records))
	region := strings.ToLower(f.Region)
	category := strings.ToLower(f.Category)

	for _, rec := range records {
		if f.StartDate != "" && rec.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && rec.Date > f.EndDate {
			continue
		}
		if region != "" && !strings.Contains(strings.ToLower(rec.Region), region) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(rec.Category), category) {
			continue
		}
		if f.CustomerType != "" && string(rec.CustomerType) != f.CustomerType {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func sortRecords(records []domain.SalesRecord, spec domain.SortSpec) {
	desc := spec.Direction == domain.SortDesc

	sort.SliceStable(records, func(i, j int) bool {
		less := recordLess(records[i], records[j], spec.Field)
		if desc {
			return recordLess(records[j], records[i], spec.Field)
		}
		return less
	})
}

func recordLess(a, b domain.SalesRecord, field string) bool {
	if field == "id" {
		ai, aerr := strconv.ParseInt(a.ID, 10, 64)
		bi, berr := strconv.ParseInt(b.ID, 10, 64)
		if aerr == nil && berr == nil {
			return ai < bi
		}
		return strings.ToLower(a.ID) < strings.ToLower(b.ID)
	}

	av, aNum := numericField(a, field)
	bv, bNum := numericField(b, field)
	if aNum && bNum {
		return av < bv
	}
	return strings.ToLower(stringField(a, field)) < strings.ToLower(stringField(b, field))
}

func numericField(r domain.SalesRecord, field string) (float64, bool) {
	switch field {
	case "quantity":
		return float64(r.Quantity), true
	case "unit_price":
		return r.UnitPrice, true
	case "revenue":
		return r.Revenue, true
	case "cost_price":
		return r.CostPrice, true
	case "profit":
		return r.Profit, true
	case "profitability":
		return r.Profitability, true
	case "discount":
		return r.Discount, true
	case "vat":
		return r.VAT, true
	case "margin":
		return r.Margin, true
	case "year":
		return float64(r.Year), true
	default:
		return 0, false
	}
}

func stringField(r domain.SalesRecord, field string) string {
	switch field {
	case "date":
		return r.Date
	case "product_name":
		return r.ProductName
	case "product_id":
		return r.ProductID
	case "category":
		return r.Category
	case "customer_type":
		return string(r.CustomerType)
	case "region":
		return r.Region
	case "sales_channel":
		return string(r.SalesChannel)
	case "shipping_status":
		return r.ShippingStatus
	case "id":
		return r.ID
	default:
		return ""
	}
}
