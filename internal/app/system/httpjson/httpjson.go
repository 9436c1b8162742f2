// Package httpjson writes the API's JSON responses.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// DetailBody is the error shape every endpoint uses: {"detail": "..."}.
type DetailBody struct {
	Detail string `json:"detail"`
}

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail sends {"detail": msg} with the given status.
func Detail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, DetailBody{Detail: msg})
}
