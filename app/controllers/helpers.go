// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes. No business logic lives here.
package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/validate"
)

// pathID reads the numeric {id} path parameter.
func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid id %q", raw)
	}
	return uint(id), nil
}

// boolParam reads an optional boolean query parameter. Only the literal
// strings "true" and "false" count; anything else reads as absent.
func boolParam(q url.Values, key string) *bool {
	switch q.Get(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func ptrBool(v bool) *bool { return &v }

// floatParam reads an optional float query parameter, ignoring junk.
func floatParam(q url.Values, key string) *float64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// uintParam reads an optional unsigned integer query parameter.
func uintParam(q url.Values, key string) *uint {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}

// dateParam reads an optional date query parameter. Unlike the numeric
// helpers, an unparseable date is a validation error, not silently absent.
func dateParam(q url.Values, key string) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := validate.ParseDate(raw)
	if err != nil {
		return nil, apperr.Validation("%s is not a valid date", key)
	}
	return &t, nil
}
