package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// schemaBase is the resource id prefix the embedded schemas are registered
// under. Nothing is fetched from it.
const schemaBase = "https://schemas.gogpu.dev/raycam/"

// schemaFiles maps message types to their embedded schema.
var schemaFiles = map[string]string{
	TypeCameraInfo: "camera_info.schema.json",
	TypeRayFrame:   "ray_frame.schema.json",
	TypeClose:      "close.schema.json",
	TypeControl:    "control.schema.json",
}

// Validator checks raw messages against the JSON schemas shipped with the
// package. A Validator is safe for concurrent use.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles every embedded schema.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	for _, name := range schemaFiles {
		b, err := schemaFS.ReadFile(path.Join("schemas", name))
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(schemaBase+name, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("protocol: schema %s: %w", name, err)
		}
	}
	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(schemaFiles))}
	for typ, name := range schemaFiles {
		s, err := c.Compile(schemaBase + name)
		if err != nil {
			return nil, fmt.Errorf("protocol: compile %s: %w", name, err)
		}
		v.schemas[typ] = s
	}
	return v, nil
}

// Validate checks raw against the schema for typ. Types without a schema
// are accepted.
func (v *Validator) Validate(typ string, raw []byte) error {
	s, ok := v.schemas[typ]
	if !ok {
		return nil
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("protocol: %s: %w", strings.ToLower(typ), err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("protocol: %s: %w", strings.ToLower(typ), err)
	}
	return nil
}

// Has reports whether a schema exists for typ.
func (v *Validator) Has(typ string) bool {
	_, ok := v.schemas[typ]
	return ok
}
