package admin

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"campusintelli/internal/api"
)

func TestFormPayload(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		spec   FieldSpec
		want   api.Payload
	}{
		{
			name:   "unchecked checkbox",
			values: url.Values{"title": {"Founders Day"}, "start_date": {"2026-05-01"}, "id": {""}},
			spec:   eventFields,
			want:   api.Payload{"title": "Founders Day", "start_date": "2026-05-01", "is_holiday": false},
		},
		{
			name:   "checked checkbox",
			values: url.Values{"title": {"T"}, "is_pinned": {"on"}, "id": {"4"}},
			spec:   announcementFields,
			want:   api.Payload{"title": "T", "is_pinned": true, "id": "4"},
		},
		{
			name:   "numeric day",
			values: url.Values{"day_of_week": {"3"}, "room": {"B2", "ignored"}},
			spec:   slotFields,
			want:   api.Payload{"day_of_week": 3, "room": "B2"},
		},
		{
			name:   "unparsable number",
			values: url.Values{"day_of_week": {"x"}},
			spec:   slotFields,
			want:   api.Payload{"day_of_week": nil},
		},
		{
			name:   "transport fields dropped",
			values: url.Values{"gorilla.csrf.Token": {"abc"}, "confirm": {"yes"}, "page": {"events"}, "title": {"T"}},
			want:   api.Payload{"title": "T"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormPayload(tt.values, tt.spec))
		})
	}
}

func TestPatchPayload(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		spec   FieldSpec
		want   api.Payload
	}{
		{
			name:   "missing typed fields left out",
			values: url.Values{"id": {"s1"}, "room": {"B12"}},
			spec:   slotFields,
			want:   api.Payload{"id": "s1", "room": "B12"},
		},
		{
			name:   "missing checkbox left out",
			values: url.Values{"id": {"e1"}, "title": {"Renamed"}},
			spec:   eventFields,
			want:   api.Payload{"id": "e1", "title": "Renamed"},
		},
		{
			name:   "checkbox turned on",
			values: url.Values{"is_holiday": {"on"}},
			spec:   eventFields,
			want:   api.Payload{"is_holiday": true},
		},
		{
			name:   "checkbox turned off",
			values: url.Values{"is_pinned": {"false"}},
			spec:   announcementFields,
			want:   api.Payload{"is_pinned": false},
		},
		{
			name:   "present number parsed",
			values: url.Values{"day_of_week": {"4"}},
			spec:   slotFields,
			want:   api.Payload{"day_of_week": 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PatchPayload(tt.values, tt.spec))
		})
	}
}
