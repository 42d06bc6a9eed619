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

// Package shared contains helpers shared by all client subcommands.
package shared

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/tdsc/constants"
	tdscshared "github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// Viper configuration keys for the client subcommands.
const (
	Address = "client.address"
	Token   = "client.token"
	NoColor = "client.noColor"
)

// Client is a thin API client over the connector's HTTP endpoints.
type Client struct {
	requester tdscshared.Requester
	baseURL   *url.URL
}

// GetClient returns a connector API client built from the viper config.
func GetClient() (*Client, error) {
	base, err := url.Parse(viper.GetString(Address))
	if err != nil {
		return nil, err
	}
	return &Client{
		requester: &tdscshared.HTTPRequester{
			Token: viper.GetString(Token),
		},
		baseURL: base.JoinPath(constants.APIPath),
	}, nil
}

// Get does a GET request against the given API path, with optional query
// parameters.
func (c *Client) Get(ctx context.Context, query url.Values, elem ...string) ([]byte, error) {
	target := c.baseURL.JoinPath(elem...)
	target.RawQuery = query.Encode()
	return c.requester.SendHTTPRequest(ctx, http.MethodGet, target, nil)
}

// Put does a PUT request against the given API path.
func (c *Client) Put(ctx context.Context, body []byte, elem ...string) ([]byte, error) {
	return c.requester.SendHTTPRequest(ctx, http.MethodPut, c.baseURL.JoinPath(elem...), body)
}

// Post does a POST request against the given API path.
func (c *Client) Post(ctx context.Context, body []byte, elem ...string) ([]byte, error) {
	return c.requester.SendHTTPRequest(ctx, http.MethodPost, c.baseURL.JoinPath(elem...), body)
}
