// Package query implements the sort/filter/paginate engine shared by every
// tabular view. The engine only reads store rows: sorting happens on copies,
// and identical inputs always produce identical output.
package query

import (
	"sort"
	"strings"

	"github.com/AI2HU/tubedash/internal/models"
)

// View materializes one table page: filter, stable sort, paginate.
//
// Page semantics: page <= 0 behaves as page 1; a page beyond the last yields
// an empty slice while TotalPages reflects the filtered set. A zero dataset
// page size disables pagination.
func View(rows []models.Row, ds Dataset, sortState models.SortState, filter models.Filter, page int) models.ViewResult {
	filtered := Filter(rows, ds, filter)
	sorted := Sort(filtered, ds, sortState)
	return paginate(sorted, ds.PageSize, page)
}

// Filter applies the tag and free-text filters. Tag is exact equality against
// the raw stored value; search is a case-insensitive substring match, OR
// across the dataset's search fields. The two filters are ANDed.
func Filter(rows []models.Row, ds Dataset, filter models.Filter) []models.Row {
	if filter.Empty() {
		out := make([]models.Row, len(rows))
		copy(out, rows)
		return out
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		if ds.FilterByTag && filter.Tag != "" {
			tag, _ := r["tag"].(string)
			if tag != filter.Tag {
				continue
			}
		}
		if term != "" && !matchesSearch(r, ds.SearchFields, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r models.Row, fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(r.Str(f)), term) {
			return true
		}
	}
	return false
}

// Sort orders rows by the resolved sort key. The sort is stable and operates
// on a copy; canonical store rows are never reordered.
func Sort(rows []models.Row, ds Dataset, st models.SortState) []models.Row {
	out := make([]models.Row, len(rows))
	copy(out, rows)

	desc := st.Dir == models.Desc
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(ds.Accessor(out[i], st.Key), ds.Accessor(out[j], st.Key))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func paginate(rows []models.Row, pageSize, page int) models.ViewResult {
	total := len(rows)

	if pageSize <= 0 {
		return models.ViewResult{Rows: rows, TotalCount: total, TotalPages: 1, Page: 1}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= total {
		return models.ViewResult{Rows: []models.Row{}, TotalCount: total, TotalPages: totalPages, Page: page}
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return models.ViewResult{Rows: rows[start:end], TotalCount: total, TotalPages: totalPages, Page: page}
}
