package controllers

import (
	"net/http"

	"github.com/lucifer43562/wastelink-backend/api/responses"
	"github.com/lucifer43562/wastelink-backend/api/validators"
	"github.com/lucifer43562/wastelink-backend/internal/locator"
	pkgerrors "github.com/lucifer43562/wastelink-backend/pkg/errors"
	"github.com/lucifer43562/wastelink-backend/pkg/logger"
)

// CompaniesNearby ranks the waste companies serving the supplied location.
func CompaniesNearby(svc locator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "locator service unavailable"))
			return
		}

		var body locator.NearbyBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Nearby(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
