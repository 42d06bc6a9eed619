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

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/logging"
)

func TestMiddlewareRequestScopedLabels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := logging.NewMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logging.Extract(r.Context()).Info("handled")
		}))

	for _, path := range []string{"/first", "/second"} {
		handler.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, path, nil))
	}

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	assert.Nil(t, dec.Decode(&first))
	assert.Nil(t, dec.Decode(&second))

	assert.NotEmpty(t, first["request_id"])
	assert.Equal(t, "/first", first["path"])

	// labels are scoped per request, not accumulated on the shared logger
	assert.Equal(t, "/second", second["path"])
	assert.NotEqual(t, first["request_id"], second["request_id"])
}
