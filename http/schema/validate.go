package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/switchback-web/switchback"
)

// Validate checks every surface spec binds a Validator to,
// in the fixed order body, query, params, headers.
//
// On success, Validate returns a request whose context carries
// the normalized data for each validated surface;
// retrieve it with Body, Query, Params, or Headers.
//
// On the first failing surface, Validate stops and returns a *Failure
// whose issues are qualified with the surface name;
// no schema for a later surface is evaluated.
//
// Any other error is unexpected trouble (a misconfigured Validator, say)
// and should pass to the surrounding error-handling stage untranslated.
//
// Validate must run before any handler that reads the validated surfaces:
// replacing a surface's data with the Validator's coerced output
// is its explicit, observable contract.
func Validate(spec Spec, r *http.Request) (*http.Request, error) {
	if err := spec.Valid(); err != nil {
		return nil, err
	}

	rawBody, err := readBody(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading request body: %s", switchback.ErrUnexpected, err)
	}

	validators := spec.forMethod(r.Method)
	val := ValidatedFrom(r)
	for _, surface := range surfaceOrder {
		v := validators[surface]
		if v == nil {
			continue
		}

		data, issues, err := v.SafeParse(rawSurface(r, surface, rawBody))
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", surface, err)
		}

		if len(issues) > 0 {
			qualified := make([]Issue, 0, len(issues))
			for _, i := range issues {
				qualified = append(qualified, i.qualify(surface))
			}

			return nil, &Failure{
				Message:   failureMessage,
				Validator: v,
				Surface:   surface,
				Issues:    qualified,
				Request:   snapshot(r, rawBody),
			}
		}

		val.set(surface, data)
	}

	return withValidated(r, val), nil
}

// rawSurface extracts the raw value SafeParse receives for the surface.
func rawSurface(r *http.Request, s Surface, rawBody []byte) any {
	switch s {
	case SurfaceBody:
		return json.RawMessage(rawBody)
	case SurfaceQuery:
		return r.URL.Query()
	case SurfaceParams:
		return mux.Vars(r)
	default:
		return r.Header
	}
}

// readBody drains r.Body and restores it so later stages can re-read it.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// snapshot captures the raw surfaces for a Failure,
// defaulting absent body, query, and params to empty objects.
func snapshot(r *http.Request, rawBody []byte) Snapshot {
	body := make(map[string]any)
	if len(rawBody) > 0 {
		// best effort; an unparseable body snapshots as an empty object
		json.Unmarshal(rawBody, &body)
	}

	query := make(map[string]string)
	for k, vals := range r.URL.Query() {
		if len(vals) > 0 {
			query[k] = vals[0]
		}
	}

	params := mux.Vars(r)
	if params == nil {
		params = make(map[string]string)
	}

	headers := make(map[string]string, len(r.Header))
	for k, vals := range r.Header {
		if len(vals) > 0 {
			headers[k] = vals[0]
		}
	}

	return Snapshot{Body: body, Query: query, Params: params, Headers: headers}
}
