// Package viewstate derives the rows a screen tab shows from one fetched
// list, the caller's identity and the active filters. It never fetches and
// never fails: it works on whatever the cache already resolved.
package viewstate

import (
	"encoding/json"
	"strings"
)

type Tab string

const (
	TabStaff      Tab = "staff"
	TabMyRequests Tab = "my_requests"
	TabApprovals  Tab = "approvals"
	TabAll        Tab = "all"
)

const defaultApprovalStatus = "pending"

// Row is any record that has a submitter and a status.
type Row interface {
	SubmitterID() string
	StatusValue() string
}

func ParseTab(s string) (Tab, bool) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabStaff, TabMyRequests, TabApprovals, TabAll:
		return t, true
	case "":
		return TabAll, true
	}
	return "", false
}

// SearchUpstream reports whether the tab hands the search term to the HR API
// instead of filtering locally.
func (t Tab) SearchUpstream() bool {
	return t == TabStaff
}

type Params struct {
	Tab    Tab
	Status string
	Search string
	UserID string
}

// MyRequests keeps rows submitted by userID, in input order.
func MyRequests[R Row](rows []R, userID string) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if r.SubmitterID() == userID {
			out = append(out, r)
		}
	}
	return out
}

// FilterStatus compares lowercased values. With no status the approvals tab
// shows pending rows and every other tab is left alone.
func FilterStatus[R Row](rows []R, tab Tab, status string) []R {
	want := strings.ToLower(strings.TrimSpace(status))
	if want == "" {
		if tab != TabApprovals {
			return rows
		}
		want = defaultApprovalStatus
	}

	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if strings.ToLower(r.StatusValue()) == want {
			out = append(out, r)
		}
	}
	return out
}

// Search matches term case-insensitively against every top-level field value
// of the row's JSON form. Nested objects and arrays are matched as compact
// JSON text. The staff tab already searched upstream.
func Search[R Row](rows []R, tab Tab, term string) []R {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || tab.SearchUpstream() {
		return rows
	}

	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if rowContains(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func rowContains(r any, term string) bool {
	b, err := json.Marshal(r)
	if err != nil {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return strings.Contains(strings.ToLower(string(b)), term)
	}
	for _, raw := range fields {
		if strings.Contains(strings.ToLower(stringify(raw)), term) {
			return true
		}
	}
	return false
}

func stringify(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	return string(raw)
}

// Build applies the tab partition, then the status filter, then search.
func Build[R Row](rows []R, p Params) []R {
	if rows == nil {
		rows = []R{}
	}
	if p.Tab == TabMyRequests {
		rows = MyRequests(rows, p.UserID)
	}
	rows = FilterStatus(rows, p.Tab, p.Status)
	return Search(rows, p.Tab, p.Search)
}
