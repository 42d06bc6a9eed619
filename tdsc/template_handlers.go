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
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

// createTemplateMessage is the body of POST /contract-templates. It lives
// here rather than in shared as it's the only message embedding template
// policy types.
type createTemplateMessage struct {
	ConnectorID     string                    `json:"connector_id" validate:"required,uuid"`
	Name            string                    `json:"name" validate:"required"`
	Description     string                    `json:"description,omitempty"`
	ContractType    string                    `json:"contract_type" validate:"required,oneof=single_policy multi_policy"`
	PolicyTemplates []template.PolicyTemplate `json:"policy_templates" validate:"required,min=1,dive"`
}

// createTemplateHandler handles POST /contract-templates. Templates start out
// as drafts and must be activated before contracts can use them.
func (ah *apiHandlers) createTemplateHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[createTemplateMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid template", err.Error())
	}
	connectorID := uuid.MustParse(msg.ConnectorID)
	if _, err := ah.store.GetConnector(ctx, connectorID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return validationError(ctx, "Unknown connector",
				fmt.Sprintf("template for unknown connector %s", connectorID))
		}
		return err
	}
	contractType, err := template.ParseContractType(msg.ContractType)
	if err != nil {
		return validationError(ctx, "Invalid contract_type", err.Error())
	}
	tmpl, err := template.New(ctx, uuid.New(), connectorID,
		msg.Name, msg.Description, contractType, msg.PolicyTemplates)
	if err != nil {
		return validationError(ctx, "Invalid template", err.Error())
	}
	if err := ah.store.PutTemplate(ctx, tmpl); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, tmpl.ToModel())
}

// listTemplatesHandler handles GET /contract-templates, optionally filtered
// by connector_id and status.
func (ah *apiHandlers) listTemplatesHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	filter, err := parseListFilter(ctx, req)
	if err != nil {
		return err
	}
	templates, err := ah.store.ListTemplates(ctx)
	if err != nil {
		return err
	}
	models := make([]template.Model, 0, len(templates))
	for _, t := range templates {
		if filter.connectorID != (uuid.UUID{}) && t.GetConnectorID() != filter.connectorID {
			continue
		}
		if filter.status != "" && t.GetState().String() != filter.status {
			continue
		}
		models = append(models, t.ToModel())
	}
	return shared.EncodeValid(w, req, http.StatusOK, models)
}

// getTemplateHandler handles GET /contract-templates/{id}.
func (ah *apiHandlers) getTemplateHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	tmpl, err := ah.store.GetTemplateR(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Template not found", fmt.Sprintf("template %s not found", id))
		}
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, tmpl.ToModel())
}

// activateTemplateHandler handles PUT /contract-templates/{id}/activate.
func (ah *apiHandlers) activateTemplateHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.transitionTemplate(w, req, template.States.ACTIVE)
}

// deprecateTemplateHandler handles PUT /contract-templates/{id}/deprecate.
// Deprecation stops new contracts from using the template, existing contracts
// keep running.
func (ah *apiHandlers) deprecateTemplateHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.transitionTemplate(w, req, template.States.DEPRECATED)
}

func (ah *apiHandlers) transitionTemplate(w http.ResponseWriter, req *http.Request, target template.State) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	tmpl, err := ah.store.GetTemplateRW(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Template not found", fmt.Sprintf("template %s not found", id))
		}
		return err
	}
	if err := tmpl.SetState(target); err != nil {
		_ = ah.store.ReleaseTemplate(ctx, tmpl)
		return conflictError(ctx,
			fmt.Sprintf("Template cannot go from %s to %s", tmpl.GetState(), target),
			err.Error())
	}
	if err := ah.store.PutTemplate(ctx, tmpl); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, tmpl.ToModel())
}
