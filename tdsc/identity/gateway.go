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

package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// Gateway generates DID material. Key generation is owned by the upstream
// identity service, the connector never touches private keys.
type Gateway interface {
	GenerateDID(ctx context.Context) (*shared.GenerateDIDResponse, error)
}

// HTTPGateway talks to the upstream identity gateway over HTTP+JSON.
type HTTPGateway struct {
	Requester shared.Requester
	BaseURL   *url.URL
}

// NewHTTPGateway returns a gateway client for the given base URL.
func NewHTTPGateway(baseURL *url.URL) *HTTPGateway {
	return &HTTPGateway{
		Requester: &shared.HTTPRequester{},
		BaseURL:   baseURL,
	}
}

// GenerateDID asks the upstream gateway for a fresh DID and document.
func (g *HTTPGateway) GenerateDID(ctx context.Context) (*shared.GenerateDIDResponse, error) {
	target := g.BaseURL.JoinPath("identity", "did", "generate")
	body, err := g.Requester.SendHTTPRequest(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, fmt.Errorf("identity gateway: %w", err)
	}
	resp, err := shared.UnmarshalAndValidate(ctx, body, shared.GenerateDIDResponse{})
	if err != nil {
		return nil, fmt.Errorf("identity gateway returned invalid response: %w", err)
	}
	return &resp, nil
}
