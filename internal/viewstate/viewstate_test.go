package viewstate_test

import (
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/viewstate"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID        int               `json:"id"`
	Submitter string            `json:"submitter"`
	Status    string            `json:"status"`
	Note      string            `json:"note,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

func (r row) SubmitterID() string { return r.Submitter }
func (r row) StatusValue() string { return r.Status }

func ids(rows []row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

var sample = []row{
	{ID: 1, Submitter: "7", Status: "pending", Note: "Family wedding"},
	{ID: 2, Submitter: "9", Status: "Approved", Note: "Conference"},
	{ID: 3, Submitter: "7", Status: "REJECTED", Extra: map[string]string{"city": "Pune"}},
	{ID: 4, Submitter: "12", Status: "Pending"},
}

func TestMyRequests(t *testing.T) {
	assert.Equal(t, []int{1, 3}, ids(viewstate.MyRequests(sample, "7")))
	assert.Empty(t, viewstate.MyRequests(sample, "70"))
	assert.Empty(t, viewstate.MyRequests(sample, ""))
}

func TestFilterStatus(t *testing.T) {
	tests := []struct {
		name   string
		tab    viewstate.Tab
		status string
		want   []int
	}{
		{"approvals default pending", viewstate.TabApprovals, "", []int{1, 4}},
		{"approvals explicit overrides default", viewstate.TabApprovals, "approved", []int{2}},
		{"mixed case filter", viewstate.TabAll, "Pending", []int{1, 4}},
		{"upper case stored value", viewstate.TabMyRequests, "rejected", []int{3}},
		{"no filter outside approvals", viewstate.TabAll, "", []int{1, 2, 3, 4}},
		{"whitespace is no filter", viewstate.TabStaff, "  ", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(viewstate.FilterStatus(sample, tt.tab, tt.status)))
		})
	}
}

func TestSearch(t *testing.T) {
	t.Run("staff passes through", func(t *testing.T) {
		assert.Len(t, viewstate.Search(sample, viewstate.TabStaff, "zzz"), len(sample))
	})

	t.Run("matches any field case-insensitively", func(t *testing.T) {
		assert.Equal(t, []int{1}, ids(viewstate.Search(sample, viewstate.TabAll, "WEDDING")))
		assert.Equal(t, []int{2}, ids(viewstate.Search(sample, viewstate.TabAll, "approved")))
		assert.Equal(t, []int{1, 3}, ids(viewstate.Search(sample, viewstate.TabMyRequests, "7")))
	})

	t.Run("nested values match as text", func(t *testing.T) {
		assert.Equal(t, []int{3}, ids(viewstate.Search(sample, viewstate.TabAll, "pune")))
	})

	t.Run("empty term keeps all", func(t *testing.T) {
		assert.Len(t, viewstate.Search(sample, viewstate.TabApprovals, " "), len(sample))
	})
}

func TestBuild(t *testing.T) {
	got := viewstate.Build(sample, viewstate.Params{Tab: viewstate.TabMyRequests, UserID: "7"})
	assert.Equal(t, []int{1, 3}, ids(got))

	got = viewstate.Build(sample, viewstate.Params{Tab: viewstate.TabMyRequests, UserID: "7", Status: "pending"})
	assert.Equal(t, []int{1}, ids(got))

	got = viewstate.Build(sample, viewstate.Params{Tab: viewstate.TabApprovals, Search: "conference"})
	assert.Empty(t, got)

	got = viewstate.Build[row](nil, viewstate.Params{Tab: viewstate.TabAll})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseTab(t *testing.T) {
	tab, ok := viewstate.ParseTab("")
	assert.True(t, ok)
	assert.Equal(t, viewstate.TabAll, tab)

	tab, ok = viewstate.ParseTab("My_Requests")
	assert.True(t, ok)
	assert.Equal(t, viewstate.TabMyRequests, tab)

	_, ok = viewstate.ParseTab("archive")
	assert.False(t, ok)
}
