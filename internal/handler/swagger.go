package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/dafibh/pfd/pfd-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPIDocument is the OpenAPI 3.0 rendering of the registered swagger doc
type OpenAPIDocument struct {
	OpenAPI    string         `json:"openapi"`
	Info       map[string]any `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

// Server is an OpenAPI 3.0 server entry
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

var (
	openAPIOnce sync.Once
	openAPIDoc  *OpenAPIDocument
	openAPIErr  error
)

// ServeOpenAPI3Spec serves the API description as OpenAPI 3.0 with the
// requesting host as its server
func ServeOpenAPI3Spec(c echo.Context) error {
	openAPIOnce.Do(func() {
		var raw string
		raw, openAPIErr = swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if openAPIErr == nil {
			openAPIDoc, openAPIErr = convertSwagger2([]byte(raw))
		}
	})
	if openAPIErr != nil {
		return NewInternalError(c, "Failed to build API description")
	}

	doc := *openAPIDoc
	doc.Servers = []Server{{
		URL:         c.Scheme() + "://" + c.Request().Host + docs.SwaggerInfo.BasePath,
		Description: "This server",
	}}
	return c.JSON(http.StatusOK, doc)
}

// convertSwagger2 rewrites a swagger 2.0 document into OpenAPI 3.0 form.
// Body parameters become request bodies and response schemas move under
// application/json content.
func convertSwagger2(raw []byte) (*OpenAPIDocument, error) {
	var src struct {
		Info                map[string]any            `json:"info"`
		Paths               map[string]map[string]any `json:"paths"`
		Definitions         map[string]any            `json:"definitions"`
		SecurityDefinitions map[string]any            `json:"securityDefinitions"`
	}
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}

	paths := make(map[string]any, len(src.Paths))
	for path, ops := range src.Paths {
		converted := make(map[string]any, len(ops))
		for method, op := range ops {
			if m, ok := op.(map[string]any); ok {
				converted[method] = convertOperation(m)
			} else {
				converted[method] = op
			}
		}
		paths[path] = converted
	}

	components := make(map[string]any)
	if len(src.Definitions) > 0 {
		components["schemas"] = rewriteRefs(src.Definitions)
	}
	if len(src.SecurityDefinitions) > 0 {
		components["securitySchemes"] = src.SecurityDefinitions
	}

	return &OpenAPIDocument{
		OpenAPI:    "3.0.3",
		Info:       src.Info,
		Paths:      paths,
		Components: components,
	}, nil
}

func convertOperation(op map[string]any) map[string]any {
	out := make(map[string]any, len(op))
	for k, v := range op {
		switch k {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[k] = rewriteRefs(v)
		}
	}

	if params, ok := op["parameters"].([]any); ok {
		var converted []any
		for _, p := range params {
			param, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if param["in"] == "body" {
				out["requestBody"] = map[string]any{
					"required": param["required"] == true,
					"content":  jsonContent(param["schema"]),
				}
				continue
			}
			converted = append(converted, convertParameter(param))
		}
		if len(converted) > 0 {
			out["parameters"] = converted
		}
	}

	if responses, ok := op["responses"].(map[string]any); ok {
		converted := make(map[string]any, len(responses))
		for code, r := range responses {
			resp, ok := r.(map[string]any)
			if !ok {
				continue
			}
			entry := map[string]any{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				entry["content"] = jsonContent(schema)
			}
			converted[code] = entry
		}
		out["responses"] = converted
	}
	return out
}

func convertParameter(param map[string]any) map[string]any {
	out := make(map[string]any)
	schema := make(map[string]any)
	for k, v := range param {
		switch k {
		case "name", "in", "description", "required":
			out[k] = v
		case "type", "format", "enum", "default", "minimum", "maximum", "items":
			schema[k] = rewriteRefs(v)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func jsonContent(schema any) map[string]any {
	return map[string]any{
		echo.MIMEApplicationJSON: map[string]any{"schema": rewriteRefs(schema)},
	}
}

// rewriteRefs points swagger definition refs at components/schemas
func rewriteRefs(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if ref, ok := val.(string); ok && k == "$ref" {
				out[k] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[k] = rewriteRefs(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return v
	}
}
