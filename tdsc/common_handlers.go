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
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/blockchain"
	"github.com/trusted-dataspace/tdsc/tdsc/constants"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

type apiHandlers struct {
	store    persistence.StorageProvider
	gateway  identity.Gateway
	deployer blockchain.Deployer
}

// parsePathID parses the {id} path value as a UUID.
func parsePathID(ctx context.Context, req *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		return uuid.UUID{}, validationError(ctx, "Invalid ID", fmt.Sprintf("invalid id: %s", err))
	}
	return id, nil
}

// listFilter are the query parameters the list endpoints share.
type listFilter struct {
	connectorID uuid.UUID
	hasRole     bool
	role        constants.ConnectorRole
	status      string
}

// parseListFilter parses connector_id, role and status query parameters.
// role requires connector_id, as a role is a perspective on a connector.
func parseListFilter(ctx context.Context, req *http.Request) (listFilter, error) {
	var f listFilter
	q := req.URL.Query()
	if raw := q.Get("connector_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, validationError(ctx, "Invalid connector_id",
				fmt.Sprintf("invalid connector_id: %s", err))
		}
		f.connectorID = id
	}
	if raw := q.Get("role"); raw != "" {
		role, err := constants.ParseRole(raw)
		if err != nil {
			return f, validationError(ctx, "Invalid role", err.Error())
		}
		if f.connectorID == (uuid.UUID{}) {
			return f, validationError(ctx, "role requires connector_id",
				"role filter without connector_id")
		}
		f.hasRole = true
		f.role = role
	}
	f.status = q.Get("status")
	return f, nil
}

// matchesConnector applies the connector/role filter to a provider/consumer
// connector pair. With no role, either side matches.
func (f listFilter) matchesConnector(providerID, consumerID uuid.UUID) bool {
	if f.connectorID == (uuid.UUID{}) {
		return true
	}
	if !f.hasRole {
		return providerID == f.connectorID || consumerID == f.connectorID
	}
	if f.role == constants.RoleProvider {
		return providerID == f.connectorID
	}
	return consumerID == f.connectorID
}

// completeRequest marks the data request behind a finished contract as
// completed. A request that never reached approved is left alone.
func completeRequest(ctx context.Context, store persistence.StorageProvider, id uuid.UUID) error {
	if id == (uuid.UUID{}) {
		return nil
	}
	req, err := store.GetRequestRW(ctx, id)
	if err != nil {
		return err
	}
	if req.GetState() != request.States.APPROVED {
		return store.ReleaseRequest(ctx, req)
	}
	if err := req.SetState(request.States.COMPLETED); err != nil {
		_ = store.ReleaseRequest(ctx, req)
		return err
	}
	return store.PutRequest(ctx, req)
}
