// File: cmd/api/records.go
package main

import (
	"net/http"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// listRecordsHandler answers GET /records. Malformed parameters never fail
// the request and a store failure is answered with an empty page.
func (app *app) listRecordsHandler(w http.ResponseWriter, r *http.Request) {
	params := data.ParseFilterParams(r.URL.Query())
	filter := data.BuildFilter(params)

	page := app.models.Sales.List(r.Context(), filter)

	err := app.writeJSON(w, http.StatusOK, page, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// filterOptionsHandler answers GET /records/filter-options.
func (app *app) filterOptionsHandler(w http.ResponseWriter, r *http.Request) {
	categories := data.SplitList(r.URL.Query()["categories"]...)

	options, err := app.models.Options.Get(r.Context(), categories)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, options, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
