// Package validation decodes request bodies and checks intake payloads
// against the embedded JSON schemas.
package validation

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrMalformedBody is returned when a request body cannot be decoded into a JSON object.
var ErrMalformedBody = errors.New("Invalid JSON in request body")

// Error lists every failing field of a payload, in schema order.
type Error struct {
	Fields   []string
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ", ")
}

// ApplicantInput is a validated intake payload.
type ApplicantInput struct {
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	RedditUsername   string  `json:"redditUsername"`
	TwitterUsername  *string `json:"twitterUsername"`
	YoutubeUsername  *string `json:"youtubeUsername"`
	FacebookUsername *string `json:"facebookUsername"`
}

// ContractorRequestInput is a validated contractor-request payload.
type ContractorRequestInput struct {
	Email       string `json:"email"`
	CompanySlug string `json:"companySlug"`
	CompanyName string `json:"companyName"`
}

type field struct {
	name    string
	message string
}

var applicantFields = []field{
	{"email", "Invalid email address"},
	{"phone", "Phone number must be at least 10 characters"},
	{"redditUsername", "Reddit username is required"},
	{"twitterUsername", "Twitter username must be a string"},
	{"youtubeUsername", "YouTube username must be a string"},
	{"facebookUsername", "Facebook username must be a string"},
}

var contractorFields = []field{
	{"email", "Invalid email address"},
	{"companySlug", "Company slug is required"},
	{"companyName", "Company name is required"},
}

// Validator holds the compiled payload schemas. It is safe for concurrent use.
type Validator struct {
	applicant  *jsonschema.Schema
	contractor *jsonschema.Schema
}

func New() (*Validator, error) {
	applicant, err := loadSchema("schemas/applicant.json")
	if err != nil {
		return nil, err
	}
	contractor, err := loadSchema("schemas/contractor_request.json")
	if err != nil {
		return nil, err
	}
	return &Validator{applicant: applicant, contractor: contractor}, nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return rs, nil
}

// DecodeBody turns a raw request body into a JSON object. A body that is
// itself a JSON-encoded string is decoded a second time.
func DecodeBody(raw []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, ErrMalformedBody
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, ErrMalformedBody
		}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrMalformedBody
	}
	return obj, nil
}

// Applicant validates an intake payload.
func (v *Validator) Applicant(ctx context.Context, payload map[string]any) (*ApplicantInput, error) {
	var in ApplicantInput
	if err := v.check(ctx, v.applicant, applicantFields, payload, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ContractorRequest validates a contractor-request payload.
func (v *Validator) ContractorRequest(ctx context.Context, payload map[string]any) (*ContractorRequestInput, error) {
	var in ContractorRequestInput
	if err := v.check(ctx, v.contractor, contractorFields, payload, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (v *Validator) check(ctx context.Context, rs *jsonschema.Schema, fields []field, payload map[string]any, out any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ErrMalformedBody
	}

	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if len(keyErrs) > 0 {
		return fieldErrors(fields, keyErrs)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// fieldErrors collapses schema key errors into one message per field.
func fieldErrors(fields []field, keyErrs []jsonschema.KeyError) *Error {
	failed := make(map[string]bool)
	var unmapped []string
	for _, ke := range keyErrs {
		name := fieldFor(fields, ke)
		if name == "" {
			unmapped = append(unmapped, ke.Message)
			continue
		}
		failed[name] = true
	}

	out := &Error{}
	for _, f := range fields {
		if failed[f.name] {
			out.Fields = append(out.Fields, f.name)
			out.Messages = append(out.Messages, f.message)
		}
	}
	out.Messages = append(out.Messages, unmapped...)
	return out
}

func fieldFor(fields []field, ke jsonschema.KeyError) string {
	path := strings.TrimPrefix(ke.PropertyPath, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	for _, f := range fields {
		if f.name == path {
			return f.name
		}
	}
	// root-level errors ("required") name the property in the message
	for _, f := range fields {
		if strings.Contains(ke.Message, `"`+f.name+`"`) {
			return f.name
		}
	}
	return ""
}
