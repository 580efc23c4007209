package resp

import (
	"errors"
	"net/http"

	"github.com/switchback-web/switchback/http/schema"
	"github.com/switchback-web/switchback/logger"
)

// A SchemaIssue is the wire rendering of a single schema.Issue.
type SchemaIssue struct {
	// Attribute is the issue path joined with ".", e.g., "body.username".
	Attribute string `json:"attribute"`
	Error     string `json:"error"`
}

// ValidationContent is the "content" member of the validation error envelope.
type ValidationContent struct {
	Message      string          `json:"message"`
	Request      schema.Snapshot `json:"request"`
	SchemaIssues []SchemaIssue   `json:"schemaIssues"`
}

type validationEnvelope struct {
	Error   bool              `json:"error"`
	Content ValidationContent `json:"content"`
}

// Validation returns the default error responder for validation failures.
//
// It recognizes a *schema.Failure by type, responds 400 with the fixed shape
//
//	{"error":true,"content":{"message","request","schemaIssues":[{"attribute","error"}]}}
//
// and reports it handled. Any other error is left untouched
// so it passes through to the next error-handling stage.
func Validation(d *Responder) func(http.ResponseWriter, *http.Request, error) bool {
	return func(w http.ResponseWriter, r *http.Request, err error) bool {
		var failure *schema.Failure
		if !errors.As(err, &failure) {
			return false
		}

		issues := make([]SchemaIssue, 0, len(failure.Issues))
		for _, i := range failure.Issues {
			issues = append(issues, SchemaIssue{Attribute: i.Attribute(), Error: i.Message})
		}

		body := validationEnvelope{
			Error: true,
			Content: ValidationContent{
				Message:      failure.Message,
				Request:      failure.Request,
				SchemaIssues: issues,
			},
		}

		if err := d.Json(w, r, Code(http.StatusBadRequest), Data(body)); err != nil {
			d.logger.Error("failed responding to validation failure", &logger.LogContext{Error: err, Request: r})
		}

		return true
	}
}
