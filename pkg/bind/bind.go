// Package bind decodes and validates JSON request bodies.
package bind

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearthworks/remodel/pkg/validate"
)

// maxBodyBytes caps request bodies at 4 MB.
const maxBodyBytes = 4 << 20

// ErrInvalidJSON is returned when the body is not parseable JSON.
var ErrInvalidJSON = errors.New("invalid JSON body")

// JSON decodes the request body into dst and runs struct-tag validation.
// On validation failure it returns the field→message map; callers respond
// with response.ValidationErrors.
func JSON(w http.ResponseWriter, r *http.Request, dst interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return nil, ErrInvalidJSON
	}

	if errs := validate.Struct(dst); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
