// README: JSON-schema validation of inbound chat and merge requests.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidRequest is matched with errors.Is on every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// Error carries the individual schema violations.
type Error struct {
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, strings.Join(e.Details, "; "))
}

func (e *Error) Unwrap() error { return ErrInvalidRequest }

const nullableString = `{"type": ["string", "null"]}`

const tripContextSchema = `{
	"type": ["object", "null"],
	"properties": {
		"destination": ` + nullableString + `,
		"duration": ` + nullableString + `,
		"travelStyle": ` + nullableString + `,
		"dates": {
			"type": ["object", "null"],
			"properties": {
				"start": ` + nullableString + `,
				"end": ` + nullableString + `
			}
		},
		"budget": {
			"type": ["object", "null"],
			"properties": {
				"amount": {"type": "integer"},
				"currency": {"type": "string"}
			}
		}
	}
}`

const chatSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {"type": "string", "pattern": "\\S", "maxLength": 2000},
		"turnCount": {"type": "integer", "minimum": 0},
		"tripSnapshot": ` + tripContextSchema + `,
		"actionId": {"type": "string", "maxLength": 64},
		"conversationId": {"type": "string", "pattern": "^[A-Za-z0-9-]{1,64}$"}
	}
}`

const payloadSchema = `{
	"type": "object",
	"properties": {
		"type": {"type": "string"},
		"summary": {"type": "string"},
		"tripMeta": {"type": ["object", "null"]},
		"sections": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {"id": {"type": "string", "minLength": 1}}
			}
		},
		"days": {"type": ["array", "null"]},
		"actions": {"type": ["array", "null"]}
	}
}`

const mergeSchema = `{
	"type": "object",
	"required": ["current", "incoming"],
	"properties": {
		"current": ` + payloadSchema + `,
		"incoming": ` + payloadSchema + `
	}
}`

// Validator holds the compiled request schemas. It is safe for concurrent use.
type Validator struct {
	chat  *gojsonschema.Schema
	merge *gojsonschema.Schema
}

func New() (*Validator, error) {
	chat, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(chatSchema))
	if err != nil {
		return nil, fmt.Errorf("compile chat schema: %w", err)
	}
	merge, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(mergeSchema))
	if err != nil {
		return nil, fmt.Errorf("compile merge schema: %w", err)
	}
	return &Validator{chat: chat, merge: merge}, nil
}

// ChatRequest validates a raw POST /api/chat body.
func (v *Validator) ChatRequest(body []byte) error {
	return validate(v.chat, body)
}

// MergeRequest validates a raw POST /api/chat/merge body.
func (v *Validator) MergeRequest(body []byte) error {
	return validate(v.merge, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &Error{Details: []string{"malformed JSON body"}}
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return &Error{Details: details}
}
