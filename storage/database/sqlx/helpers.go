package sqlxrepos

import (
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nandyala/kacheri/core"
)

// ext resolves the executor for a call: a service-provided one (e.g. a
// transaction) when present, the repository's own handle otherwise.
func ext(db *sqlx.DB, svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if e, ok := svcExec[0].(sqlx.ExtContext); ok {
			return e
		}
	}
	return db
}

func joinOr(conds []string) string {
	return strings.Join(conds, " OR ")
}

// whereClause joins conditions into a WHERE clause, empty when there are none.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// orderClause renders an ORDER BY clause, falling back to a default ordering.
func orderClause(ordering []core.DBOrdering, dflt string) string {
	if len(ordering) == 0 {
		if dflt == "" {
			return ""
		}
		return " ORDER BY " + dflt
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

// placeholders renders $n placeholders for the half-open range [from, from+n).
func placeholders(from, n int) string {
	ph := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ph = append(ph, "$"+strconv.Itoa(from+i))
	}
	return strings.Join(ph, ",")
}
