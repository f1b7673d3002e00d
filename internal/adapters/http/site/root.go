// Package site serves the embedded browser form for the appraisal calculator.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded form to mux at /. More specific API routes
// registered on the same mux take precedence.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
