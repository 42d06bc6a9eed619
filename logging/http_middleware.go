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

package logging

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// NewMiddleware returns a middleware that injects a request-scoped logger
// into the request context, tagged with the request line and a generated
// request id. Handlers and the auth middleware add further labels on top via
// InjectLabels, so every log line for one request carries the same id.
func NewMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With(
				"request_id", uuid.New().String(),
				"method", r.Method,
				"host", r.Host,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"ip", r.RemoteAddr,
			)
			next.ServeHTTP(w, r.WithContext(Inject(r.Context(), reqLogger)))
		})
	}
}
