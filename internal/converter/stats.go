package converter

import (
	"sort"
	"strings"

	"github.com/nconklindev/chore/internal/types"
)

// StatsListLimit caps how many distinct values a summary lists.
const StatsListLimit = 10

// StatsRoles are the columns summarized after a sheet is read.
var StatsRoles = []types.Role{
	types.RoleObject,
	types.RoleSite,
	types.RoleManagerName,
	types.RoleSeniorManagerName,
}

// Summarize counts the distinct non-missing values of each role in roles.
// Roles the sheet has no column for are skipped.
func Summarize(records []*types.Record, schema types.Schema, roles []types.Role) []types.ColumnStats {
	var stats []types.ColumnStats

	for _, role := range roles {
		column, ok := schema.Column(role)
		if !ok {
			continue
		}

		values := DistinctValues(records, column)
		listed := values
		if len(listed) > StatsListLimit {
			listed = listed[:StatsListLimit]
		}

		stats = append(stats, types.ColumnStats{
			Role:     role,
			Column:   column,
			Distinct: len(values),
			Values:   listed,
		})
	}

	return stats
}

// DistinctValues returns the sorted distinct values of column, skipping
// nulls and NaN.
func DistinctValues(records []*types.Record, column string) []any {
	seen := make(map[any]struct{})
	var values []any

	for _, rec := range records {
		v := rec.Value(column)
		if types.IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.SliceStable(values, func(i, j int) bool {
		return compareValues(values[i], values[j]) < 0
	})
	return values
}

// compareValues orders numbers before booleans before text.
func compareValues(a, b any) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case 0:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 1:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	default:
		return strings.Compare(types.Text(a), types.Text(b))
	}
}

func valueRank(v any) int {
	switch v.(type) {
	case int64, float64:
		return 0
	case bool:
		return 1
	default:
		return 2
	}
}
