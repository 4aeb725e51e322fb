// Package sqlxrepos implements the core repositories on top of sqlx.
// Queries use `?` placeholders and are rebound for the driver in use.
package sqlxrepos

import (
	"strings"

	"github.com/trezcool/bursary/core"
)

type repository struct {
	exec core.DBExecutor
}

func (repo repository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func orderBy(ordering []core.DBOrdering, deflt string, allowed ...string) string {
	ordering = core.CleanOrdering(ordering, allowed...)
	if len(ordering) == 0 {
		return " ORDER BY " + deflt
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
