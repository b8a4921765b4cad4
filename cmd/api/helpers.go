package main

import (
	"encoding/json"
	"net/http"
)

// creating an envelope type
type envelope map[string]any

func (a *app) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	// encodes data into json format by using indenting for better readability
	jsResponse, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	jsResponse = append(jsResponse, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(jsResponse)
	return err
}
