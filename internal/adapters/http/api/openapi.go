package api

import (
	_ "embed"
	"net/http"
)

// OpenAPI is the embedded description of the read API.
//
//go:embed openapi.yaml
var OpenAPI []byte

// HandleOpenAPI serves OpenAPI.
func HandleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(OpenAPI)
}
