package reimbursement_test

import (
	"encoding/json"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReimbursement_CurrentStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"latest status wins", `{"id":1,"status":"pending","latest_status":{"status":"approved"}}`, "approved"},
		{"flat status fallback", `{"id":1,"status":"rejected"}`, "rejected"},
		{"empty latest status", `{"id":1,"status":"paid","latest_status":{"status":""}}`, "paid"},
		{"nothing set", `{"id":1}`, "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r reimbursement.Reimbursement
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.want, r.CurrentStatus())
		})
	}
}

func TestReimbursement_AmountDecoding(t *testing.T) {
	var rows []reimbursement.Reimbursement
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"amount":"1250.50","submitted_by":{"id":7,"name":"Asha"}},
		{"id":"2","amount":99.99,"submitted_by":9}
	]`), &rows))

	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, "7", rows[0].SubmitterID())
	assert.Equal(t, "9", rows[1].SubmitterID())
	assert.Equal(t, "2", rows[1].ID.String())
}
