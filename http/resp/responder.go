package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/switchback-web/switchback/logger"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes common methods for writing structured data as an HTTP response.
//
// Most oftentimes, setting up a single instance of a Responder suffices
// for an application.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no structured response can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
		doer.logger.Error(msg, &logger.LogContext{Error: err, Request: r})
	}

	if rr.code == 0 {
		rr.code = http.StatusInternalServerError
	}

	http.Error(w, msg, rr.code)
}

// Json writes the data set by Fns as a JSON response.
//
// The response is prerendered into a pooled buffer so a marshaling failure
// never truncates the body mid-write; on failure,
// Json responds 500 and returns the error.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		doer.Err(w, r, err)
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		err = fmt.Errorf("%w: failed encoding data: %s", ErrInvalid, err)
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rr.code)
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("failed writing response: %w", err)
	}

	return nil
}

// do applies all the Fns to a new Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (Response, error) {
	rr := Response{w: w, r: r}
	for _, opt := range opts {
		if err := opt(*doer, &rr); err != nil {
			return rr, err
		}
	}

	select {
	case <-r.Context().Done():
		return rr, ErrDone
	default:
		return rr, nil
	}
}
