package model_test

import (
	"encoding/json"
	"testing"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantDisplay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		display string
		email   string
	}{
		{"bare string", `"c@x.com"`, "c@x.com", "c@x.com"},
		{"name and email", `{"name":"Ana","email":"a@x.com"}`, "Ana (a@x.com)", "a@x.com"},
		{"name only", `{"name":"Ana"}`, "Ana", ""},
		{"email only", `{"email":"b@x.com"}`, "b@x.com", "b@x.com"},
		{"empty name counts as absent", `{"name":"","email":"b@x.com"}`, "b@x.com", "b@x.com"},
		{"neither field", `{"phone": "555-0100"}`, `{"phone":"555-0100"}`, ""},
		{"non-string email ignored", `{"name":"Ana","email":42}`, "Ana", ""},
		{"number", `7`, "7", ""},
		{"null", `null`, "null", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p model.Participant
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))

			d := p.Display()
			assert.Equal(t, tt.display, d.Display)
			assert.Equal(t, tt.email, d.Email)
			assert.Equal(t, tt.email != "", d.HasKey())
		})
	}
}

func TestParticipantConstructors(t *testing.T) {
	t.Run("email participant", func(t *testing.T) {
		d := model.EmailParticipant("a@x.com").Display()
		assert.Equal(t, model.DisplayParticipant{Display: "a@x.com", Email: "a@x.com"}, d)
	})

	t.Run("named participant without fields", func(t *testing.T) {
		d := model.NamedParticipant("", "").Display()
		assert.Equal(t, "{}", d.Display)
		assert.False(t, d.HasKey())
	})
}

func TestParticipantMarshalRoundTrip(t *testing.T) {
	in := `["a@x.com",{"name":"Ana","email":"b@x.com"},{"name":"Bo"}]`

	var ps []model.Participant
	require.NoError(t, json.Unmarshal([]byte(in), &ps))
	require.Len(t, ps, 3)
	assert.Equal(t, model.StringForm, ps[0].Form)
	assert.Equal(t, model.ObjectForm, ps[1].Form)

	out, err := json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}
