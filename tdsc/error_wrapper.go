// Copyright 2025 trusted-dataspace
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tdsc

import (
	"context"
	"errors"
	"net/http"

	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// HTTPReturnError is an error carrying everything needed to render a sane
// connector error over HTTP: a status code and a client-safe detail string.
type HTTPReturnError interface {
	error
	StatusCode() int
	Detail() string
}

// APIError is the concrete HTTPReturnError the handlers return.
type APIError struct {
	status int
	detail string
	err    string
}

func (e APIError) Error() string   { return e.err }
func (e APIError) StatusCode() int { return e.status }
func (e APIError) Detail() string  { return e.detail }

func apiError(ctx context.Context, status int, detail, err string) APIError {
	logging.Extract(ctx).Error("request error",
		"statusCode", status,
		"detail", detail,
		"err", err,
	)
	return APIError{status: status, detail: detail, err: err}
}

func validationError(ctx context.Context, detail string, err string) APIError {
	return apiError(ctx, http.StatusBadRequest, detail, err)
}

func notFoundError(ctx context.Context, detail string, err string) APIError {
	return apiError(ctx, http.StatusNotFound, detail, err)
}

func conflictError(ctx context.Context, detail string, err string) APIError {
	return apiError(ctx, http.StatusConflict, detail, err)
}

func unauthorizedError(ctx context.Context, detail string, err string) APIError {
	return apiError(ctx, http.StatusUnauthorized, detail, err)
}

// WrapHandlerWithError wraps an http handler that returns an error into a
// generic http.Handler. If the error conforms to HTTPReturnError it is
// rendered as-is, any other error becomes a generic 500 so internals never
// leak into the detail field.
func WrapHandlerWithError(h func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err != nil {
			logger := logging.Extract(r.Context())
			logger.Error("HTTP handler returned error", "err", err.Error())

			var httpError HTTPReturnError
			if errors.As(err, &httpError) {
				if err := shared.EncodeValid(w, r, httpError.StatusCode(), shared.DetailError{
					Detail: httpError.Detail(),
				}); err != nil {
					logger.Error("Error while encoding HTTP error", "err", err)
				}
				return
			}

			if err := shared.EncodeValid(w, r, http.StatusInternalServerError, shared.DetailError{
				Detail: "Internal server error",
			}); err != nil {
				logger.Error("Error while encoding generic error", "err", err)
			}
		}
	})
}
