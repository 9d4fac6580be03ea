package admin

import (
	"net/url"
	"sort"
	"strconv"

	"campusintelli/internal/api"
)

// FieldSpec says how form fields are typed in the payload.
type FieldSpec struct {
	Checkboxes []string // present means true, absent means false
	Ints       []string // parsed as integers; unparsable values become null
}

var (
	eventFields        = FieldSpec{Checkboxes: []string{"is_holiday"}}
	announcementFields = FieldSpec{Checkboxes: []string{"is_pinned"}}
	slotFields         = FieldSpec{Ints: []string{"day_of_week"}}
)

// ignoredFields never reach the backend.
var ignoredFields = map[string]bool{
	"confirm":            true,
	"page":               true,
	"gorilla.csrf.Token": true,
}

// FormPayload flattens submitted form values into a JSON payload. Each key
// takes its first value; an empty id is dropped. Every checkbox and int
// field of spec is always set, as a full form submits them all.
func FormPayload(values url.Values, spec FieldSpec) api.Payload {
	return payload(values, spec, false)
}

// PatchPayload is FormPayload for partial updates: typed fields missing from
// values stay out of the payload so the backend keeps their stored values.
// A present checkbox is true unless its value parses as false.
func PatchPayload(values url.Values, spec FieldSpec) api.Payload {
	return payload(values, spec, true)
}

func payload(values url.Values, spec FieldSpec, partial bool) api.Payload {
	p := api.Payload{}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ignoredFields[k] {
			continue
		}
		p[k] = values.Get(k)
	}
	if p["id"] == "" {
		delete(p, "id")
	}
	for _, k := range spec.Checkboxes {
		_, present := values[k]
		switch {
		case !present && partial:
		case partial:
			on, err := strconv.ParseBool(values.Get(k))
			p[k] = err != nil || on
		default:
			p[k] = present
		}
	}
	for _, k := range spec.Ints {
		if _, present := values[k]; !present && partial {
			continue
		}
		n, err := strconv.Atoi(values.Get(k))
		if err != nil {
			p[k] = nil
			continue
		}
		p[k] = n
	}
	return p
}
