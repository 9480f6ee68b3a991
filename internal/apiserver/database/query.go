package database

import (
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows per list page.
const PageSize = 20

// SortDir is a validated sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir maps arbitrary input to a valid direction, defaulting to asc.
func ParseSortDir(s string) SortDir {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// SQL returns the ORDER BY keyword for the direction.
func (d SortDir) SQL() string {
	if d == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// ListOptions carries the common list-view query parameters. Office is the
// mandatory scoping trigram for non-admin callers; empty means unscoped.
type ListOptions struct {
	Search string
	Sort   string
	Dir    SortDir
	Page   int
	Office string
}

// ListResult is one page of a filtered listing plus its totals.
type ListResult[T any] struct {
	Rows       []T
	Total      int64
	TotalPages int
	Page       int
}

// TotalPages computes the page count for a match total: never below 1.
func TotalPages(total int64) int {
	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

// listSpec fixes, per entity, which columns are searchable, which sort keys
// are allowed, and which column scopes non-admin callers. Sort keys not in
// the map fall back to defaultSort; column names never come from user input.
type listSpec struct {
	searchColumns []string
	sortColumns   map[string]string
	defaultSort   string
	officeColumn  string
	// officeJoin joins the owning parent when the scoping trigram lives on
	// another table; table then qualifies the SELECT so the joined columns
	// never shadow the entity's own.
	officeJoin string
	table      string
}

// listRows runs the shared search/scope/sort/paginate query for one entity.
// Totals are computed from the unpaginated filter, so an out-of-range page
// simply returns no rows.
func listRows[T any](db *gorm.DB, opt ListOptions, spec listSpec) (*ListResult[T], error) {
	filtered := func() *gorm.DB {
		q := db.Model(new(T))
		if opt.Search != "" && len(spec.searchColumns) > 0 {
			like := "%" + strings.ToLower(opt.Search) + "%"
			conds := make([]string, 0, len(spec.searchColumns))
			args := make([]interface{}, 0, len(spec.searchColumns))
			for _, col := range spec.searchColumns {
				conds = append(conds, "LOWER("+col+") LIKE ?")
				args = append(args, like)
			}
			q = q.Where(strings.Join(conds, " OR "), args...)
		}
		if spec.officeColumn != "" && opt.Office != "" {
			if spec.officeJoin != "" {
				q = q.Joins(spec.officeJoin)
			}
			q = q.Where(spec.officeColumn+" = ?", opt.Office)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	page := opt.Page
	if page < 1 {
		page = 1
	}

	sortCol, ok := spec.sortColumns[opt.Sort]
	if !ok {
		sortCol = spec.defaultSort
	}

	q := filtered()
	if spec.officeJoin != "" && opt.Office != "" {
		q = q.Select(spec.table + ".*")
	}

	var rows []T
	err := q.
		Order(sortCol + " " + opt.Dir.SQL()).
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ListResult[T]{
		Rows:       rows,
		Total:      total,
		TotalPages: TotalPages(total),
		Page:       page,
	}, nil
}

// allRows is listRows without pagination, used by the report exports so the
// generated file carries every matched row.
func allRows[T any](db *gorm.DB, opt ListOptions, spec listSpec) ([]T, error) {
	q := db.Model(new(T))
	if opt.Search != "" && len(spec.searchColumns) > 0 {
		like := "%" + strings.ToLower(opt.Search) + "%"
		conds := make([]string, 0, len(spec.searchColumns))
		args := make([]interface{}, 0, len(spec.searchColumns))
		for _, col := range spec.searchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	if spec.officeColumn != "" && opt.Office != "" {
		if spec.officeJoin != "" {
			q = q.Joins(spec.officeJoin).Select(spec.table + ".*")
		}
		q = q.Where(spec.officeColumn+" = ?", opt.Office)
	}

	sortCol, ok := spec.sortColumns[opt.Sort]
	if !ok {
		sortCol = spec.defaultSort
	}

	var rows []T
	err := q.Order(sortCol + " " + opt.Dir.SQL()).Find(&rows).Error
	return rows, err
}
