package main

import (
	"net/http"
	"time"
)

func (app *app) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	payload := envelope{
		"status":  "available",
		"service": "sales-records",
		"system_info": map[string]string{
			"environment": app.config.env,
			"version":     version,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	err := app.writeJSON(w, http.StatusOK, payload, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
