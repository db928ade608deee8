package core

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// ListQuery is the filter every read endpoint is built from: a month token,
// a free-text search term and a 1-indexed pagination cursor. The search
// term matches title OR description OR the canonical price text,
// case-insensitively; an empty term matches everything.
type ListQuery struct {
	Month   MonthToken
	Search  string
	Page    int
	PerPage int
}

// Normalize applies the pagination defaults and floors. Page and per-page
// values below 1 silently fall back to the defaults; there is no
// validation error class for query parameters.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	return q
}

// Offset is the number of records skipped before the page slice.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Statistics are the month-scoped sum/count aggregates. An empty month
// reports zeros, never null.
type Statistics struct {
	TotalSaleAmount   Money `json:"totalSaleAmount"`
	TotalSoldItems    int64 `json:"totalSoldItems"`
	TotalNotSoldItems int64 `json:"totalNotSoldItems"`
}

// PriceBucket is one fixed, inclusive price sub-range of the histogram.
// MaxCents < 0 marks the open-ended last bucket.
type PriceBucket struct {
	Label    string
	MinCents int64
	MaxCents int64
}

// PriceBuckets is the fixed histogram partition. Bounds are inclusive
// integer dollar amounts; consecutive buckets start at min+1, so a
// fractional price strictly between two bounds belongs to no bucket, as in
// the original dataset contract.
var PriceBuckets = []PriceBucket{
	{Label: "0-100", MinCents: 0, MaxCents: 100_00},
	{Label: "101-200", MinCents: 101_00, MaxCents: 200_00},
	{Label: "201-300", MinCents: 201_00, MaxCents: 300_00},
	{Label: "301-400", MinCents: 301_00, MaxCents: 400_00},
	{Label: "401-500", MinCents: 401_00, MaxCents: 500_00},
	{Label: "501-600", MinCents: 501_00, MaxCents: 600_00},
	{Label: "601-700", MinCents: 601_00, MaxCents: 700_00},
	{Label: "701-800", MinCents: 701_00, MaxCents: 800_00},
	{Label: "801-900", MinCents: 801_00, MaxCents: 900_00},
	{Label: "901-above", MinCents: 901_00, MaxCents: -1},
}

// Contains reports whether a price falls inside the bucket bounds.
func (b PriceBucket) Contains(m Money) bool {
	if m.Cents < b.MinCents {
		return false
	}
	return b.MaxCents < 0 || m.Cents <= b.MaxCents
}

// BucketCount is one histogram entry in the bar-chart response.
type BucketCount struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// CategoryCount is one group of the pie-chart response. Category is nil
// for the missing-category group; the field name matches the original
// aggregation output.
type CategoryCount struct {
	Category *string `json:"_id"`
	Count    int64   `json:"count"`
}

// CombinedData merges the three analytics results for one month.
type CombinedData struct {
	Statistics Statistics      `json:"statistics"`
	BarChart   []BucketCount   `json:"barChart"`
	PieChart   []CategoryCount `json:"pieChart"`
}

// ListResult is the listing endpoint payload: total match count plus one
// page slice. The two reads are not transactionally consistent; the data
// is read-mostly so the drift window is accepted.
type ListResult struct {
	Total        int64         `json:"total"`
	Transactions []Transaction `json:"transactions"`
}

// PageCount returns the number of pages for a per-page size.
func (r ListResult) PageCount(perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := int((r.Total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
