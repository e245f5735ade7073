package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// writeError maps a service error onto its status and code. Anything
// unrecognised is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		apiErr := accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeValidation, verr.Error())
		apiErr.Details = verr.Fields
		apiErr.WriteError(w)
	case errors.Is(err, service.ErrDuplicateUsername):
		accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeDuplicateUsername, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		accountsdk.NewAPIError(http.StatusNotFound, accountsdk.ErrorCodeNotFound, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrAuthenticationFailed):
		accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeAuthenticationFailed, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrAccountDeactivated):
		accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeAccountDeactivated, err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		accountsdk.ErrServerError.WriteError(w)
	}
}

// writeBadBody reports a body that could not be decoded. A value of the wrong
// JSON type is reported against its field.
func writeBadBody(w http.ResponseWriter, err error) {
	field, msg := "body", "request body must be a single JSON object"

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, httpx.ErrEmptyBody):
		msg = "request body is empty"
	case errors.As(err, &maxErr):
		msg = fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field = typeErr.Field
		msg = fmt.Sprintf("must be a JSON %s", jsonKind(typeErr.Type))
	}

	desc := msg
	if field != "body" {
		desc = field + ": " + msg
	}
	apiErr := accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeValidation, desc)
	apiErr.Details = map[string]string{field: msg}
	apiErr.WriteError(w)
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "value"
	}
}

// pathID parses the {id} wildcard. Only positive integers are ids.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		apiErr := accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeValidation, "user id must be a positive integer")
		apiErr.Details = map[string]string{"id": "must be a positive integer"}
		apiErr.WriteError(w)
		return 0, false
	}
	return id, true
}
