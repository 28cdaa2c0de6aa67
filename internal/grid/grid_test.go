package grid

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/csg33k/roster-viewer/internal/domain"
)

func records(n int) []domain.Employee {
	out := make([]domain.Employee, n)
	for i := range out {
		out[i] = domain.Employee{
			ID:         int64(i + 1),
			Name:       fmt.Sprintf("Emp%02d", n-i),
			Department: []string{"HR", "Sales"}[i%2],
			Role:       "Rep",
			Salary:     decimal.NewFromInt(int64(1000 * (i%3 + 1))),
			Active:     i%2 == 0,
		}
	}
	return out
}

func ids(rows []domain.Employee) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestBuild_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		q         Query
		wantIDs   string
		wantPage  int
		wantPages int
		first     int
		last      int
	}{
		{"first page default size", 23, Query{}, "[1 2 3 4 5 6 7 8 9 10]", 1, 3, 1, 10},
		{"last partial page", 23, Query{Page: 3}, "[21 22 23]", 3, 3, 21, 23},
		{"page beyond end clamps", 23, Query{Page: 9}, "[21 22 23]", 3, 3, 21, 23},
		{"page below one clamps", 5, Query{Page: -2, PageSize: 2}, "[1 2]", 1, 3, 1, 2},
		{"empty roster", 0, Query{Page: 2}, "[]", 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(records(tt.n), tt.q)
			if got := fmt.Sprint(ids(v.Rows)); got != tt.wantIDs {
				t.Errorf("rows = %s, want %s", got, tt.wantIDs)
			}
			if v.Query.Page != tt.wantPage || v.Pages != tt.wantPages {
				t.Errorf("page %d/%d, want %d/%d", v.Query.Page, v.Pages, tt.wantPage, tt.wantPages)
			}
			if v.FirstRow != tt.first || v.LastRow != tt.last {
				t.Errorf("rows %d-%d, want %d-%d", v.FirstRow, v.LastRow, tt.first, tt.last)
			}
			if v.Total != tt.n {
				t.Errorf("total = %d, want %d", v.Total, tt.n)
			}
		})
	}
}

func TestBuild_Sort(t *testing.T) {
	in := records(6)
	tests := []struct {
		q    Query
		want string
	}{
		{Query{Sort: "name"}, "[6 5 4 3 2 1]"},
		{Query{Sort: "name", Desc: true}, "[1 2 3 4 5 6]"},
		// Stable: equal salaries keep store order.
		{Query{Sort: "salary"}, "[1 4 2 5 3 6]"},
		{Query{Sort: "status"}, "[1 3 5 2 4 6]"},
		{Query{Sort: "department", Desc: true}, "[2 4 6 1 3 5]"},
		{Query{Sort: "bogus", Desc: true}, "[1 2 3 4 5 6]"},
	}
	for _, tt := range tests {
		v := Build(in, tt.q)
		if got := fmt.Sprint(ids(v.Rows)); got != tt.want {
			t.Errorf("Build(%+v) = %s, want %s", tt.q, got, tt.want)
		}
	}
	if fmt.Sprint(ids(in)) != "[1 2 3 4 5 6]" {
		t.Error("Build reordered its input")
	}
}

func TestBuild_UnknownSortIsCleared(t *testing.T) {
	v := Build(records(2), Query{Sort: "bogus", Desc: true})
	if v.Query.Sort != "" || v.Query.Desc {
		t.Errorf("query = %+v, want sort cleared", v.Query)
	}
}

func TestView_Navigation(t *testing.T) {
	v := Build(records(25), Query{Page: 2})
	if !v.HasPrev() || !v.HasNext() {
		t.Errorf("page 2 of 3: prev=%v next=%v", v.HasPrev(), v.HasNext())
	}
	v = Build(records(5), Query{})
	if v.HasPrev() || v.HasNext() {
		t.Errorf("single page: prev=%v next=%v", v.HasPrev(), v.HasNext())
	}
}
