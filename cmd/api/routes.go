// Filename: /cmd/api/routes.go
// Description: connects the routes with an api

package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *app) routes() http.Handler {
	router := httprouter.New()

	// Handle 404 errors
	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	// handling 405 errors
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	// Records
	router.HandlerFunc(http.MethodGet, "/records", app.listRecordsHandler)
	router.HandlerFunc(http.MethodGet, "/records/filter-options", app.filterOptionsHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(app.enableCORS(router))))
}
