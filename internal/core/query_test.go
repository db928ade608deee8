package core

import "testing"

func TestListQueryNormalize(t *testing.T) {
	cases := []struct {
		in      ListQuery
		page    int
		perPage int
		offset  int
	}{
		{ListQuery{}, 1, 10, 0},
		{ListQuery{Page: 0, PerPage: 0}, 1, 10, 0},
		{ListQuery{Page: -5, PerPage: -1}, 1, 10, 0},
		{ListQuery{Page: 2, PerPage: 10}, 2, 10, 10},
		{ListQuery{Page: 3, PerPage: 25}, 3, 25, 50},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.page || got.PerPage != tc.perPage {
			t.Fatalf("%+v normalized to page=%d perPage=%d", tc.in, got.Page, got.PerPage)
		}
		if got.Offset() != tc.offset {
			t.Fatalf("%+v offset=%d, expected %d", tc.in, got.Offset(), tc.offset)
		}
	}
}

func TestPriceBucketsFixedShape(t *testing.T) {
	if len(PriceBuckets) != 10 {
		t.Fatalf("expected 10 buckets, got %d", len(PriceBuckets))
	}
	if PriceBuckets[0].Label != "0-100" || PriceBuckets[9].Label != "901-above" {
		t.Fatalf("unexpected bucket labels: %s ... %s", PriceBuckets[0].Label, PriceBuckets[9].Label)
	}
	if PriceBuckets[9].MaxCents >= 0 {
		t.Fatalf("last bucket should be open-ended")
	}
}

func TestPriceBucketContains(t *testing.T) {
	cases := []struct {
		label string
		cents int64
		in    bool
	}{
		{"0-100", 0, true},
		{"0-100", 100_00, true},
		{"0-100", 100_01, false},
		{"101-200", 100_50, false}, // between bounds, belongs to no bucket
		{"101-200", 101_00, true},
		{"901-above", 901_00, true},
		{"901-above", 5_000_00, true},
		{"901-above", 900_99, false},
	}
	byLabel := map[string]PriceBucket{}
	for _, b := range PriceBuckets {
		byLabel[b.Label] = b
	}
	for _, tc := range cases {
		b, ok := byLabel[tc.label]
		if !ok {
			t.Fatalf("no bucket %q", tc.label)
		}
		if got := b.Contains(Money{Cents: tc.cents}); got != tc.in {
			t.Fatalf("bucket %s Contains(%d)=%v, expected %v", tc.label, tc.cents, got, tc.in)
		}
	}
}

func TestBucketGapMatchesNoBucket(t *testing.T) {
	gap := Money{Cents: 100_50}
	for _, b := range PriceBuckets {
		if b.Contains(gap) {
			t.Fatalf("price 100.50 should fall in no bucket, matched %s", b.Label)
		}
	}
}

func TestListResultPageCount(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		pages   int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{60, 10, 6},
		{5, 0, 1}, // invalid per-page falls back to default
	}
	for _, tc := range cases {
		r := ListResult{Total: tc.total}
		if got := r.PageCount(tc.perPage); got != tc.pages {
			t.Fatalf("total=%d perPage=%d expected %d pages, got %d", tc.total, tc.perPage, tc.pages, got)
		}
	}
}
