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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// generateDIDHandler handles POST /identity/did/generate, proxying to the
// upstream identity gateway which owns the key material.
func (ah *apiHandlers) generateDIDHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	resp, err := ah.gateway.GenerateDID(ctx)
	if err != nil {
		return apiError(ctx, http.StatusBadGateway, "Identity gateway unavailable", err.Error())
	}
	return shared.EncodeValid(w, req, http.StatusOK, resp)
}

// registerConnectorHandler handles POST /identity/did/register, registering a
// connector under a data space.
func (ah *apiHandlers) registerConnectorHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.RegisterConnectorMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid register request", err.Error())
	}

	spaces, err := ah.store.ListDataSpaces(ctx)
	if err != nil {
		return err
	}
	known := false
	for _, s := range spaces {
		if s.ID == msg.DataSpaceID {
			known = true
			break
		}
	}
	if !known {
		return validationError(ctx, "Unknown data space",
			fmt.Sprintf("register connector in unknown data space %s", msg.DataSpaceID))
	}

	connectors, err := ah.store.ListConnectors(ctx)
	if err != nil {
		return err
	}
	for _, c := range connectors {
		if c.DID == msg.DID {
			return conflictError(ctx, "DID already registered",
				fmt.Sprintf("connector DID %s already registered as %s", msg.DID, c.ID))
		}
	}

	conn := &identity.Connector{
		ID:          uuid.New(),
		DID:         msg.DID,
		DisplayName: msg.DisplayName,
		Status:      "registered",
		DataSpaceID: msg.DataSpaceID,
		DIDDocument: msg.DIDDocument,
		CreatedAt:   time.Now(),
	}
	if err := ah.store.PutConnector(ctx, conn); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, conn.ToModel())
}

// listConnectorsHandler handles GET /identity/connectors, optionally filtered by
// data_space_id.
func (ah *apiHandlers) listConnectorsHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	connectors, err := ah.store.ListConnectors(ctx)
	if err != nil {
		return err
	}
	dataSpaceID := req.URL.Query().Get("data_space_id")
	models := make([]identity.ConnectorModel, 0, len(connectors))
	for _, c := range connectors {
		if dataSpaceID != "" && c.DataSpaceID != dataSpaceID {
			continue
		}
		models = append(models, c.ToModel())
	}
	return shared.EncodeValid(w, req, http.StatusOK, models)
}

// getConnectorHandler handles GET /identity/connectors/{id}.
func (ah *apiHandlers) getConnectorHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	conn, err := ah.store.GetConnector(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Connector not found", fmt.Sprintf("connector %s not found", id))
		}
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, conn.ToModel())
}

// listDataSpacesHandler handles GET /identity/data-spaces.
func (ah *apiHandlers) listDataSpacesHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	spaces, err := ah.store.ListDataSpaces(ctx)
	if err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, spaces)
}
