package leave

import (
	"strconv"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
)

const resource = "leaves"

func listKey(scope string, f Filter) querycache.Key {
	return querycache.NewKey(resource, "list", f.CacheString()).Scoped(scope)
}

func detailKey(scope, id string) querycache.Key {
	return querycache.NewKey(resource, "detail", id).Scoped(scope)
}

func balanceKey(scope, employeeID string, year int) querycache.Key {
	return querycache.NewKey(resource, "balance", employeeID, strconv.Itoa(year)).Scoped(scope)
}

func calendarKey(scope string, year, month int) querycache.Key {
	return querycache.NewKey(resource, "calendar", strconv.Itoa(year), strconv.Itoa(month)).Scoped(scope)
}

func singletonKey(scope, variant string) querycache.Key {
	return querycache.NewKey(resource, variant).Scoped(scope)
}

var (
	listPrefix       = querycache.Prefix{resource, "list"}
	statisticsPrefix = querycache.Prefix{resource, "statistics"}
	upcomingPrefix   = querycache.Prefix{resource, "upcoming"}
	teamPrefix       = querycache.Prefix{resource, "team"}
	calendarPrefix   = querycache.Prefix{resource, "calendar"}
)

func detailPrefix(id string) querycache.Prefix {
	return querycache.Prefix{resource, "detail", id}
}

// balancePrefix narrows to one employee when the mutation response names
// one, otherwise every cached balance goes stale.
func balancePrefix(employeeID string) querycache.Prefix {
	if employeeID == "" {
		return querycache.Prefix{resource, "balance"}
	}
	return querycache.Prefix{resource, "balance", employeeID}
}

func reviewFanOut(id string, r Request) []querycache.Prefix {
	return []querycache.Prefix{
		listPrefix,
		detailPrefix(id),
		balancePrefix(r.SubmitterID()),
		statisticsPrefix,
		upcomingPrefix,
		teamPrefix,
	}
}

func createFanOut(r Request) []querycache.Prefix {
	return []querycache.Prefix{
		listPrefix,
		balancePrefix(r.SubmitterID()),
		statisticsPrefix,
		upcomingPrefix,
		teamPrefix,
		calendarPrefix,
	}
}

func cancelFanOut(id string, r Request) []querycache.Prefix {
	return append(reviewFanOut(id, r), calendarPrefix)
}
