package paging

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		wantPage int
		wantSize int
	}{
		{name: "in range", page: 3, perPage: 20, wantPage: 2, wantSize: 20},
		{name: "zero page", page: 0, perPage: 10, wantPage: 0, wantSize: 10},
		{name: "negative page", page: -7, perPage: 10, wantPage: 0, wantSize: 10},
		{name: "size below floor", page: 1, perPage: 1, wantPage: 0, wantSize: MinPerPage},
		{name: "negative size", page: 1, perPage: -3, wantPage: 0, wantSize: MinPerPage},
		{name: "size above ceiling", page: 0, perPage: 999, wantPage: 0, wantSize: MaxPerPage},
		{name: "lower bound kept", page: 2, perPage: 5, wantPage: 1, wantSize: 5},
		{name: "upper bound kept", page: 2, perPage: 50, wantPage: 1, wantSize: 50},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.page, tc.perPage)
			if got.Page != tc.wantPage {
				t.Fatalf("expected page %d, got %d", tc.wantPage, got.Page)
			}
			if got.Size != tc.wantSize {
				t.Fatalf("expected size %d, got %d", tc.wantSize, got.Size)
			}
			if got.Sort != SortCreatedAt || !got.Desc {
				t.Fatalf("expected created_at DESC, got %q desc=%v", got.Sort, got.Desc)
			}
		})
	}
}

func TestNormalizeIsIdempotentOnFloor(t *testing.T) {
	for page := -50; page < FirstPage; page++ {
		if got := Normalize(page, 10); got.Page+1 != FirstPage {
			t.Fatalf("page %d normalized to %d", page, got.Page+1)
		}
	}
}

func TestRequestOffset(t *testing.T) {
	req := Normalize(3, 10)
	if req.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", req.Offset())
	}
}
