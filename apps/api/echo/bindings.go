package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/bursary/core"
)

const orderingParam = "ordering"

// bindOrdering reads `?ordering=last_name,-created_at` into DB orderings.
// Fields are whitelisted by the repositories.
func bindOrdering(ctx echo.Context) []core.DBOrdering {
	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		return nil
	}

	var orderings []core.DBOrdering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// bindStatuses accepts both `?status=A&status=B` and `?status=A,B`.
func bindStatuses(ctx echo.Context) []string {
	var statuses []string
	for _, val := range ctx.QueryParams()["status"] {
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}
	return statuses
}
