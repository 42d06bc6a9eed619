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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/trusted-dataspace/tdsc/logging"
)

// Requester is an interface for sending out HTTP requests, mockable in tests.
type Requester interface {
	SendHTTPRequest(ctx context.Context, method string, url *url.URL, reqBody []byte) ([]byte, error)
}

// HTTPRequester sends JSON requests to an upstream service, optionally
// carrying a bearer token.
type HTTPRequester struct {
	Client *http.Client
	Token  string
}

func (hr *HTTPRequester) SendHTTPRequest(
	ctx context.Context, method string, url *url.URL, reqBody []byte,
) ([]byte, error) {
	if hr.Client == nil {
		hr.Client = http.DefaultClient
	}
	ctx, logger := logging.InjectLabels(ctx, "method", method, "target_url", url.String())

	req, err := http.NewRequestWithContext(ctx, method, url.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if hr.Token != "" {
		req.Header.Set("Authorization", "Bearer "+hr.Token)
	}

	resp, err := hr.Client.Do(req)
	if err != nil {
		logger.Error("Request failed", "err", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Could not read response body", "err", err)
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Unexpected status code", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// MustParseURL parses a URL and panics if it fails. Only for use with static
// URLs and in tests.
func MustParseURL(u string) *url.URL {
	pu, err := url.Parse(u)
	if err != nil {
		panic(fmt.Sprintf("couldn't parse URL %s: %s", u, err))
	}
	return pu
}
