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

package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/trusted-dataspace/tdsc/logging"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// EncodeValid validates v, writes it as JSON with the given status code, and
// sets the content type header. Non-struct values, like the list endpoint
// slices, are encoded without validation.
func EncodeValid[T any](w http.ResponseWriter, r *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if isStruct(v) {
		if err := validate.Struct(v); err != nil {
			return handleValidationError(err, logging.Extract(r.Context()))
		}
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// DecodeValid decodes the request body into T and validates it.
func DecodeValid[T any](r *http.Request) (T, error) {
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		return v, handleValidationError(err, logging.Extract(r.Context()))
	}

	return v, nil
}

// ValidateAndMarshal validates s and marshals it to JSON.
func ValidateAndMarshal[T any](ctx context.Context, s T) ([]byte, error) {
	logger := logging.Extract(ctx)
	if err := validate.Struct(s); err != nil {
		return nil, handleValidationError(err, logger)
	}
	return json.Marshal(s)
}

// UnmarshalAndValidate unmarshals b into s and validates the result.
func UnmarshalAndValidate[T any](ctx context.Context, b []byte, s T) (T, error) {
	logger := logging.Extract(ctx)
	err := json.Unmarshal(b, &s)
	if err != nil {
		logger.Error("Couldn't unmarshal JSON", "err", err)
		return s, fmt.Errorf("couldn't unmarshal JSON")
	}

	if err := validate.Struct(s); err != nil {
		return s, handleValidationError(err, logger)
	}
	return s, nil
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func handleValidationError(err error, logger *slog.Logger) error {
	// This should rarely if ever happen, but guard for it anyway.
	if _, ok := err.(*validator.InvalidValidationError); ok { //nolint:errorlint
		logger.Error("Invalid validation", "err", err)
		return fmt.Errorf("invalid validation")
	}

	for _, err := range err.(validator.ValidationErrors) { //nolint:errorlint,forcetypeassert
		logger.Error(
			"Validation error",
			"Namespace", err.Namespace(),
			"Field", err.Field(),
			"Tag", err.Tag(),
			"Kind", err.Kind(),
			"Value", err.Value(),
			"Param", err.Param(),
		)
		return fmt.Errorf("validation error on field %s", err.Field())
	}
	logger.Error("Unknown error", "err", err)
	return err
}
