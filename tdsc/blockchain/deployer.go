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

// Package blockchain contains the contract deployment clients. Actual chain
// interaction is owned by an external gateway, the connector only records the
// receipt.
package blockchain

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// Deployment is the result of deploying a contract on chain.
type Deployment struct {
	ContractAddress string `json:"contract_address" validate:"required"`
	TxID            string `json:"blockchain_tx_id" validate:"required"`
	Network         string `json:"blockchain_network" validate:"required"`
}

// Deployer deploys a contract to a blockchain network.
type Deployer interface {
	Deploy(ctx context.Context, contractID uuid.UUID) (*Deployment, error)
}

// GatewayDeployer deploys via an external blockchain gateway over HTTP+JSON.
type GatewayDeployer struct {
	Requester shared.Requester
	BaseURL   *url.URL
}

// NewGatewayDeployer returns a deployer for the given gateway base URL.
func NewGatewayDeployer(baseURL *url.URL) *GatewayDeployer {
	return &GatewayDeployer{
		Requester: &shared.HTTPRequester{},
		BaseURL:   baseURL,
	}
}

// Deploy asks the gateway to deploy the contract and returns its receipt.
func (d *GatewayDeployer) Deploy(ctx context.Context, contractID uuid.UUID) (*Deployment, error) {
	target := d.BaseURL.JoinPath("contracts", contractID.String(), "deploy")
	body, err := d.Requester.SendHTTPRequest(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, fmt.Errorf("blockchain gateway: %w", err)
	}
	deployment, err := shared.UnmarshalAndValidate(ctx, body, Deployment{})
	if err != nil {
		return nil, fmt.Errorf("blockchain gateway returned invalid receipt: %w", err)
	}
	return &deployment, nil
}

// SimulatedDeployer fabricates deterministic receipts for a named network.
// It is the development stand-in for a real gateway.
type SimulatedDeployer struct {
	Network string
}

// Deploy derives a pseudo address and transaction ID from the contract ID.
func (d *SimulatedDeployer) Deploy(ctx context.Context, contractID uuid.UUID) (*Deployment, error) {
	logging.Extract(ctx).Info("simulating contract deployment",
		"contractID", contractID.String(), "network", d.Network)
	raw := contractID[:]
	return &Deployment{
		ContractAddress: "0x" + hex.EncodeToString(raw),
		TxID:            "0x" + hex.EncodeToString(append(raw, raw...)),
		Network:         d.Network,
	}, nil
}
