// Package http holds small response helpers shared by the handlers.
package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WantsJSON reports whether the client asked for JSON ahead of HTML.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	j := strings.Index(accept, "application/json")
	if j < 0 {
		return false
	}
	h := strings.Index(accept, "text/html")
	return h < 0 || j < h
}

// Error writes a bare status response in the format the client prefers.
func Error(w http.ResponseWriter, r *http.Request, status int) {
	msg := strings.ToLower(http.StatusText(status))
	if WantsJSON(r) {
		JSON(w, status, map[string]string{"error": msg})
		return
	}
	http.Error(w, msg, status)
}
