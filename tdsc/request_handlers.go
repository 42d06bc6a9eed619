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

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// createRequestHandler handles POST /data-requests. The provider connector is
// resolved from the offering, consumers never supply it.
func (ah *apiHandlers) createRequestHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.CreateDataRequestMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid data request", err.Error())
	}
	offeringID, err := uuid.Parse(msg.DataOfferingID)
	if err != nil {
		return validationError(ctx, "Invalid data_offering_id", err.Error())
	}
	consumerID, err := uuid.Parse(msg.ConsumerConnectorID)
	if err != nil {
		return validationError(ctx, "Invalid consumer_connector_id", err.Error())
	}

	off, err := ah.store.GetOffering(ctx, offeringID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return validationError(ctx, "Unknown data offering",
				fmt.Sprintf("data request for unknown offering %s", offeringID))
		}
		return err
	}
	if !off.Requestable() {
		return conflictError(ctx, "Offering is not active",
			fmt.Sprintf("data request for %s offering %s", off.Status, offeringID))
	}
	if _, err := ah.store.GetConnector(ctx, consumerID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return validationError(ctx, "Unknown consumer connector",
				fmt.Sprintf("data request from unknown connector %s", consumerID))
		}
		return err
	}
	if off.ConnectorID == consumerID {
		return validationError(ctx, "Consumer cannot request its own offering",
			fmt.Sprintf("connector %s requested its own offering", consumerID))
	}

	mode, err := request.ParseAccessMode(msg.AccessMode)
	if err != nil {
		return validationError(ctx, "Invalid access_mode", err.Error())
	}
	dataRequest := request.New(ctx, uuid.New(), offeringID, off.ConnectorID, consumerID, msg.Purpose, mode)
	if err := ah.store.PutRequest(ctx, dataRequest); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, dataRequest.ToModel())
}

// listRequestsHandler handles GET /data-requests, with the shared
// connector/role/status filters.
func (ah *apiHandlers) listRequestsHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	filter, err := parseListFilter(ctx, req)
	if err != nil {
		return err
	}
	requests, err := ah.store.ListRequests(ctx)
	if err != nil {
		return err
	}
	models := make([]request.Model, 0, len(requests))
	for _, r := range requests {
		if !filter.matchesConnector(r.GetProviderConnectorID(), r.GetConsumerConnectorID()) {
			continue
		}
		if filter.status != "" && r.GetState().String() != filter.status {
			continue
		}
		models = append(models, r.ToModel())
	}
	return shared.EncodeValid(w, req, http.StatusOK, models)
}

// getRequestHandler handles GET /data-requests/{id}.
func (ah *apiHandlers) getRequestHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	dataRequest, err := ah.store.GetRequestR(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Data request not found", fmt.Sprintf("data request %s not found", id))
		}
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, dataRequest.ToModel())
}

// approveRequestHandler handles PUT /data-requests/{id}/approve.
func (ah *apiHandlers) approveRequestHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.decideRequest(w, req, request.States.APPROVED)
}

// rejectRequestHandler handles PUT /data-requests/{id}/reject.
func (ah *apiHandlers) rejectRequestHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.decideRequest(w, req, request.States.REJECTED)
}

// decideRequest transitions a pending request to approved or rejected. The
// request is fetched read/write so two concurrent decisions serialise, the
// loser sees a non-pending state and gets a conflict back.
func (ah *apiHandlers) decideRequest(w http.ResponseWriter, req *http.Request, target request.State) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	dataRequest, err := ah.store.GetRequestRW(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Data request not found", fmt.Sprintf("data request %s not found", id))
		}
		return err
	}
	if dataRequest.GetState() != request.States.PENDING {
		_ = ah.store.ReleaseRequest(ctx, dataRequest)
		return conflictError(ctx,
			fmt.Sprintf("Data request is already %s", dataRequest.GetState()),
			fmt.Sprintf("decision on %s request %s", dataRequest.GetState(), id))
	}
	if err := dataRequest.SetState(target); err != nil {
		_ = ah.store.ReleaseRequest(ctx, dataRequest)
		return err
	}
	if err := ah.store.PutRequest(ctx, dataRequest); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, dataRequest.ToModel())
}
