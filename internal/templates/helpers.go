package templates

import (
	"net/url"
	"strconv"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/grid"
)

// CriteriaValues encodes c with the query keys the handlers parse.
func CriteriaValues(c domain.FilterCriteria) url.Values {
	v := url.Values{}
	if c.Name != "" {
		v.Set("name", c.Name)
	}
	if c.Department != "" {
		v.Set("department", c.Department)
	}
	if s := c.Status.String(); s != "" {
		v.Set("status", s)
	}
	return v
}

// listURL builds a /employees URL for the given criteria and grid state.
func listURL(c domain.FilterCriteria, q grid.Query) string {
	v := CriteriaValues(c)
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		if q.Desc {
			v.Set("desc", "1")
		}
	}
	if q.Page > 1 {
		v.Set("page", itoa(int64(q.Page)))
	}
	return withQuery("/employees", v)
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
