// Package validation compiles the embedded JSON schemas and exposes a gin
// middleware rejecting create/update bodies that do not conform.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/terravest/platform/pkg/utils"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator wraps one resolved JSON schema.
type Validator struct {
	resolved *jsonschema.Resolved
}

// MustLoad compiles schemas/<name>.json; schemas ship with the binary, so a
// broken one is a programming error.
func MustLoad(name string) *Validator {
	v, err := Load(name)
	if err != nil {
		panic(err)
	}
	return v
}

func Load(name string) (*Validator, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", name, err)
	}

	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", name, err)
	}
	return &Validator{resolved: resolved}, nil
}

// Validate checks an already-decoded JSON value.
func (v *Validator) Validate(data interface{}) error {
	return v.resolved.Validate(data)
}

// Body is a middleware validating the request body against the schema. The
// body is restored afterwards so handlers can still bind it.
func Body(v *Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			utils.SendBadRequest(c, "unreadable request body", err)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var data interface{}
		if err := json.Unmarshal(raw, &data); err != nil {
			utils.SendBadRequest(c, "request body is not valid JSON", err)
			c.Abort()
			return
		}
		if err := v.Validate(data); err != nil {
			utils.SendError(c, http.StatusBadRequest, "request body failed validation", err)
			c.Abort()
			return
		}
		c.Next()
	}
}
