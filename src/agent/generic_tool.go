package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/autoreturn/autoreturn/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// GenericToolHandler is a type-safe tool handler.
type GenericToolHandler[TInput any, TOutput any] func(ctx context.Context, input TInput) (TOutput, error)

// GenericTool is a typed tool whose argument schema is reflected from the
// input struct's json/jsonschema tags. Malformed or incomplete arguments
// produce an error-flagged ToolResponse, never a raised fault, so one bad
// call from the model cannot abort the conversation.
type GenericTool[TInput any, TOutput any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     GenericToolHandler[TInput, TOutput]
}

// NewGenericTool creates a typed tool with automatic schema generation.
func NewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) (*GenericTool[TInput, TOutput], error) {
	var input TInput
	inputType := reflect.TypeOf(input)
	if inputType.Kind() == reflect.Ptr {
		inputType = inputType.Elem()
	}
	if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Kind())
	}

	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return &GenericTool[TInput, TOutput]{
		name:        name,
		description: description,
		schema:      &schema,
		handler:     handler,
	}, nil
}

// MustNewGenericTool creates a typed tool and panics on error. Tool
// definitions are static, so a failure here is a programming error.
func MustNewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) Tool {
	tool, err := NewGenericTool(name, description, handler)
	if err != nil {
		panic(fmt.Sprintf("failed to create tool %s: %v", name, err))
	}
	return tool
}

func (gt *GenericTool[TInput, TOutput]) GetType() string        { return "function" }
func (gt *GenericTool[TInput, TOutput]) GetName() string        { return gt.name }
func (gt *GenericTool[TInput, TOutput]) GetDescription() string { return gt.description }

func (gt *GenericTool[TInput, TOutput]) GetParameters() *jsonschema.Schema {
	return gt.schema
}

// SetParameters overrides the reflected schema for tools that need
// hand-tuned declarations (enums, formats).
func (gt *GenericTool[TInput, TOutput]) SetParameters(schema *jsonschema.Schema) {
	gt.schema = schema
}

// Execute parses and validates the call arguments, runs the handler, and
// marshals the result.
func (gt *GenericTool[TInput, TOutput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	args := call.Function.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	var input TInput
	if err := json.Unmarshal(args, &input); err != nil {
		return errorResponse(fmt.Sprintf("failed to parse input: %v", err)), nil
	}

	if err := gt.validateRequired(input); err != nil {
		return errorResponse(fmt.Sprintf("validation failed: %v", err)), nil
	}

	output, err := gt.handler(ctx, input)
	if err != nil {
		return errorResponse(err.Error()), nil
	}

	content, err := json.Marshal(output)
	if err != nil {
		return errorResponse(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return &aisdk.ToolResponse{Type: "success", Content: content}, nil
}

func errorResponse(msg string) *aisdk.ToolResponse {
	return &aisdk.ToolResponse{Type: "error", Content: []byte(msg), IsError: true}
}

// validateRequired checks schema-required fields against zero values.
func (gt *GenericTool[TInput, TOutput]) validateRequired(input TInput) error {
	if gt.schema == nil || len(gt.schema.Required) == 0 {
		return nil
	}

	val := reflect.ValueOf(input)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	for _, required := range gt.schema.Required {
		for i := 0; i < typ.NumField(); i++ {
			jsonTag := typ.Field(i).Tag.Get("json")
			if strings.Split(jsonTag, ",")[0] != required {
				continue
			}
			if val.Field(i).IsZero() {
				return fmt.Errorf("required field '%s' is missing", required)
			}
			break
		}
	}
	return nil
}

var _ Tool = (*GenericTool[struct{}, struct{}])(nil)
