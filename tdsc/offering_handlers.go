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
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// createOfferingHandler handles POST /offerings. New offerings start out
// active but unregistered, the registration pipeline moves them along.
func (ah *apiHandlers) createOfferingHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.CreateOfferingMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid offering", err.Error())
	}
	connectorID := uuid.MustParse(msg.ConnectorID)
	if _, err := ah.store.GetConnector(ctx, connectorID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return validationError(ctx, "Unknown connector",
				fmt.Sprintf("offering for unknown connector %s", connectorID))
		}
		return err
	}
	hosting := offering.HostingStatus(msg.HostingStatus)
	if hosting == "" {
		hosting = offering.HostingPending
	}
	o := &offering.Offering{
		ID:                     uuid.New(),
		ConnectorID:            connectorID,
		Title:                  msg.Title,
		Description:            msg.Description,
		DataType:               offering.DataType(msg.DataType),
		AccessPolicy:           msg.AccessPolicy,
		Status:                 offering.StatusActive,
		RegistrationStatus:     offering.RegistrationUnregistered,
		HostingStatus:          hosting,
		CrossBorderAuditStatus: offering.AuditNotRequired,
		DataZoneCode:           msg.DataZoneCode,
		StorageLocation:        msg.StorageLocation,
		CreatedAt:              time.Now(),
	}
	if err := ah.store.PutOffering(ctx, o); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, o.ToModel())
}

// listOfferingsHandler handles GET /offerings, optionally filtered by
// connector_id and status. Offerings only have a providing side, so the role
// filter of the other list endpoints is rejected here.
func (ah *apiHandlers) listOfferingsHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	filter, err := parseListFilter(ctx, req)
	if err != nil {
		return err
	}
	if filter.hasRole {
		return validationError(ctx, "role is not a valid offering filter",
			"role filter on offerings")
	}
	offerings, err := ah.store.ListOfferings(ctx)
	if err != nil {
		return err
	}
	models := make([]offering.Model, 0, len(offerings))
	for _, o := range offerings {
		if filter.connectorID != (uuid.UUID{}) && o.ConnectorID != filter.connectorID {
			continue
		}
		if filter.status != "" && string(o.Status) != filter.status {
			continue
		}
		models = append(models, o.ToModel())
	}
	return shared.EncodeValid(w, req, http.StatusOK, models)
}

// getOfferingHandler handles GET /offerings/{id}.
func (ah *apiHandlers) getOfferingHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	o, err := ah.store.GetOffering(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Offering not found", fmt.Sprintf("offering %s not found", id))
		}
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, o.ToModel())
}
