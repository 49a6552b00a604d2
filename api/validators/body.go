package validators

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/prodexlabs/prodex-backend/pkg/errors"
)

// ReadJSONBody drains the request body and returns it as a raw JSON value.
// Field-level validation happens downstream; this only rejects bodies that
// are not JSON at all.
func ReadJSONBody(r *http.Request) (json.RawMessage, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if !json.Valid(body) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request body")
	}
	return json.RawMessage(body), nil
}

// DecodeJSONList decodes the request body as a JSON array of raw items. Any
// non-array payload, JSON null included, is rejected before per-item
// processing.
func DecodeJSONList(r *http.Request) ([]json.RawMessage, error) {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	var items []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected a list of professional objects")
	}
	if items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected a list of professional objects")
	}
	return items, nil
}
