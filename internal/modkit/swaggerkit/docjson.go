package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"trendspull/internal/core/version"
	"trendspull/internal/modkit/httpkit"
	"trendspull/internal/platform/config"
	perr "trendspull/internal/platform/errors"

	"github.com/swaggo/swag/v2"
)

//go:embed openapi.json
var openapiDoc string

// SwaggerInfo is the registered doc; ReadDoc fills title, version and description into the template
var SwaggerInfo = &swag.Spec{
	Version:          version.Info().Version,
	Title:            "Trendspull API",
	Description:      "Resolve timeframes and pull Google Trends interest over time as dated tables",
	InfoInstanceName: "api",
	SwaggerTemplate:  openapiDoc,
}

func init() { swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo) }

// docReader returns the rendered document, empty when nothing is registered; tests swap it
var docReader = func() string {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return ""
	}
	return doc
}

// errorSchema mirrors the error half of the response envelope
var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// fallbacks are added to every operation that does not document the status itself
var fallbacks = map[string]map[string]any{
	"400": errorResponse(http.StatusBadRequest, perr.ErrorCodeValidation, "keywords must contain at least 1 item", "keywords"),
	"500": errorResponse(http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered", ""),
}

func errorResponse(status int, code perr.ErrorCode, msg, field string) map[string]any {
	example := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        code,
		"error":       msg,
		"request_id":  "api-7f3c/000001",
	}
	if field != "" {
		example["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

// serveDocJSON serves the embedded document as OAS 3.0 rooted at the v1 prefix
// CORE_API_DOCS_TITLE_SUFFIX is appended to the title, e.g. "(staging)"
func serveDocJSON() http.HandlerFunc {
	suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", "")
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		ensureServers(spec, httpkit.APIV1)
		if info, ok := spec["info"].(map[string]any); ok && suffix != "" {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + suffix
			}
		}
		addErrorResponses(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the document to OAS 3.0.3, which the swagger UI renders, and sets a server url
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// addErrorResponses defines ErrorResponse when missing and fills in the fallbacks
func addErrorResponses(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range item {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for status, r := range fallbacks {
				if _, ok := resps[status]; !ok {
					resps[status] = r
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
