// Package tool implements schema-described callable actions. Invocation
// authorizes and validates named arguments against the declared property
// schema before the handler runs; every failure is contained in the returned
// ToolResult so the agent loop keeps going.
package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// Handler executes a validated tool call.
type Handler func(ctx context.Context, args map[string]any) contractx.ToolResult

// AuthorizeFunc reports whether the current caller may invoke the tool.
type AuthorizeFunc func(ctx context.Context, permissions []string) error

// Definition is a concrete Tool assembled by composition: a schema, an
// authorization gate, a handler, and an optional shared workflow state.
type Definition struct {
	name        string
	description string
	properties  []contractx.ToolProperty
	permissions []string
	authorize   AuthorizeFunc
	handler     Handler
	state       *State
}

var _ contractx.Tool = (*Definition)(nil)

type Option func(*Definition)

func WithPermissions(permissions ...string) Option {
	return func(d *Definition) {
		d.permissions = permissions
	}
}

func WithAuthorize(fn AuthorizeFunc) Option {
	return func(d *Definition) {
		if fn != nil {
			d.authorize = fn
		}
	}
}

// WithState injects the per-turn workflow state the tool uses to signal
// terminal or failed conditions back to the agent loop.
func WithState(state *State) Option {
	return func(d *Definition) {
		d.state = state
	}
}

func New(name, description string, properties []contractx.ToolProperty, handler Handler, opts ...Option) *Definition {
	d := &Definition{
		name:        name,
		description: description,
		properties:  properties,
		authorize:   allowAll,
		handler:     handler,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func allowAll(context.Context, []string) error {
	return nil
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Description() string {
	return d.description
}

func (d *Definition) Properties() []contractx.ToolProperty {
	return d.properties
}

func (d *Definition) RequiredPermissions() []string {
	return d.permissions
}

// Invoke runs authorize, then argument validation, then the handler. A failed
// invocation marks the workflow state (when present) and returns a structured
// error result; it never returns a Go error.
func (d *Definition) Invoke(ctx context.Context, args map[string]any) contractx.ToolResult {
	if err := d.authorize(ctx, d.permissions); err != nil {
		return d.fail(fmt.Sprintf("%v: %v", contractx.ErrToolAuthorization, err))
	}
	if err := validateArgs(d.properties, args); err != nil {
		return d.fail(fmt.Sprintf("%v: %v", contractx.ErrToolValidation, err))
	}

	result := d.handler(ctx, args)
	result.Tool = d.name
	if result.Failed() && d.state != nil {
		d.state.MarkFailed(result.Error)
	}
	return result
}

func (d *Definition) fail(message string) contractx.ToolResult {
	if d.state != nil {
		d.state.MarkFailed(message)
	}
	return contractx.ToolResult{Tool: d.name, Error: message}
}

// validateArgs binds named arguments against the declared schema: every
// required property must be present and every supplied value must match its
// declared type.
func validateArgs(properties []contractx.ToolProperty, args map[string]any) error {
	for _, prop := range properties {
		value, present := args[prop.Name]
		if !present {
			if prop.Required {
				return fmt.Errorf("missing required argument %q", prop.Name)
			}
			continue
		}
		if !typeMatches(prop.Type, value) {
			return fmt.Errorf("argument %q must be of type %s", prop.Name, prop.Type)
		}
	}
	return nil
}

func typeMatches(declared string, value any) bool {
	switch strings.ToLower(declared) {
	case "string":
		_, ok := value.(string)
		return ok
	case "number", "integer":
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}

// StringArg reads an optional string argument.
func StringArg(args map[string]any, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

// IntArg reads an optional numeric argument, tolerating JSON float decoding.
func IntArg(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}
