package domain

// SalesRecord is the canonical sales row produced by the normalizer. Records
// are immutable once created; corrections require a re-upload.
type SalesRecord struct {
	ID             string       `json:"id" db:"id"`
	Date           string       `json:"date" db:"date"` // ISO form YYYY-MM-DD
	ProductName    string       `json:"product_name" db:"product_name"`
	ProductID      string       `json:"product_id" db:"product_id"`
	Category       string       `json:"category" db:"category"`
	Quantity       int          `json:"quantity" db:"quantity"`
	UnitPrice      float64      `json:"unit_price" db:"unit_price"`
	Revenue        float64      `json:"revenue" db:"revenue"`
	CostPrice      float64      `json:"cost_price" db:"cost_price"`
	Profit         float64      `json:"profit" db:"profit"`
	Profitability  float64      `json:"profitability" db:"profitability"`
	Discount       float64      `json:"discount" db:"discount"` // fraction in [0,1]
	VAT            float64      `json:"vat" db:"vat"`
	Margin         float64      `json:"margin" db:"margin"`
	CustomerType   CustomerType `json:"customer_type" db:"customer_type"`
	Region         string       `json:"region" db:"region"`
	SalesChannel   SalesChannel `json:"sales_channel" db:"sales_channel"`
	ShippingStatus string       `json:"shipping_status" db:"shipping_status"`
	Year           int          `json:"year" db:"year"`
}

// FilterCriteria narrows a record set; zero values mean "no constraint" and
// all populated criteria apply conjunctively.
type FilterCriteria struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Region       string `json:"region"`   // case-insensitive substring
	Category     string `json:"category"` // case-insensitive substring
	CustomerType string `json:"customer_type"`
}

// IsZero reports whether no criterion is set.
func (f FilterCriteria) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" && f.Region == "" &&
		f.Category == "" && f.CustomerType == ""
}

// SortDirection is the three-state sort toggle exposed to callers.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
	SortNone SortDirection = ""
)

// SortSpec names the record field to sort a view by.
type SortSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// UploadedFile is a single raw file handed to the ingestion pipeline.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// UploadResult summarizes one accepted batch.
type UploadResult struct {
	Files    int `json:"files"`
	Parsed   int `json:"parsed_rows"`
	Appended int `json:"appended_records"`
}
