package controllers

import (
	"net/http"
	"strings"

	"github.com/prodexlabs/prodex-backend/api/responses"
	"github.com/prodexlabs/prodex-backend/api/validators"
	professionalsvc "github.com/prodexlabs/prodex-backend/internal/professionals"
	pkgerrors "github.com/prodexlabs/prodex-backend/pkg/errors"
	"github.com/prodexlabs/prodex-backend/pkg/logger"
)

// ListProfessionals returns stored professionals newest first. An optional
// source query filters by acquisition channel; unknown values yield an empty
// list rather than an error.
func ListProfessionals(svc professionalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "professional service unavailable"))
			return
		}

		source := strings.TrimSpace(r.URL.Query().Get("source"))

		items, err := svc.List(r.Context(), source)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// CreateProfessional validates and stores a single professional record.
func CreateProfessional(svc professionalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "professional service unavailable"))
			return
		}

		raw, err := validators.ReadJSONBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		professional, err := svc.Create(r.Context(), raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, professional)
	}
}

// BulkUpsertProfessionals runs the batch pipeline. The response always
// carries the created, updated and errors buckets; per-record failures never
// fail the request.
func BulkUpsertProfessionals(svc professionalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "professional service unavailable"))
			return
		}

		items, err := validators.DecodeJSONList(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.BulkUpsert(r.Context(), items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
