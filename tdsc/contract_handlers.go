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
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// createContractHandler handles POST /contracts. A contract is always backed
// by an approved data request and an active template. Consumer connector and
// data offering may be omitted, they are then taken from the data request.
// The created contract goes straight to pending_consumer, waiting for the
// consumer's confirmation.
//
// The data request is held read/write for the whole creation so concurrent
// creates for one request serialise on its entity lock, the loser then sees
// the winner's contract in the duplicate check and gets a conflict back.
func (ah *apiHandlers) createContractHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.CreateContractMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid contract", err.Error())
	}

	providerID, err := uuid.Parse(msg.ProviderConnectorID)
	if err != nil {
		return validationError(ctx, "Invalid provider_connector_id", err.Error())
	}
	templateID, err := uuid.Parse(msg.ContractTemplateID)
	if err != nil {
		return validationError(ctx, "Invalid contract_template_id", err.Error())
	}
	requestID, err := uuid.Parse(msg.DataRequestID)
	if err != nil {
		return validationError(ctx, "Invalid data_request_id", err.Error())
	}
	var expiresAt time.Time
	if msg.ExpiresAt != "" {
		expiresAt, err = time.Parse(time.RFC3339, msg.ExpiresAt)
		if err != nil {
			return validationError(ctx, "Invalid expires_at", err.Error())
		}
	}

	dataRequest, err := ah.store.GetRequestRW(ctx, requestID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Data request not found",
				fmt.Sprintf("contract for unknown data request %s", requestID))
		}
		return err
	}
	// The request itself is never modified here, the lock is released once the
	// contract is stored or creation fails.
	defer func() {
		_ = ah.store.ReleaseRequest(ctx, dataRequest)
	}()
	if dataRequest.GetState() != request.States.APPROVED {
		return conflictError(ctx, "Data request is not approved",
			fmt.Sprintf("contract for %s data request %s", dataRequest.GetState(), requestID))
	}
	if dataRequest.GetProviderConnectorID() != providerID {
		return validationError(ctx, "Provider does not own the data request",
			fmt.Sprintf("contract by %s for request owned by %s",
				providerID, dataRequest.GetProviderConnectorID()))
	}

	consumerID := dataRequest.GetConsumerConnectorID()
	if msg.ConsumerConnectorID != "" {
		consumerID, err = uuid.Parse(msg.ConsumerConnectorID)
		if err != nil {
			return validationError(ctx, "Invalid consumer_connector_id", err.Error())
		}
		if consumerID != dataRequest.GetConsumerConnectorID() {
			return validationError(ctx, "Consumer does not match the data request",
				fmt.Sprintf("contract consumer %s, request consumer %s",
					consumerID, dataRequest.GetConsumerConnectorID()))
		}
	}
	offeringID := dataRequest.GetDataOfferingID()
	if msg.DataOfferingID != "" {
		offeringID, err = uuid.Parse(msg.DataOfferingID)
		if err != nil {
			return validationError(ctx, "Invalid data_offering_id", err.Error())
		}
		if offeringID != dataRequest.GetDataOfferingID() {
			return validationError(ctx, "Offering does not match the data request",
				fmt.Sprintf("contract offering %s, request offering %s",
					offeringID, dataRequest.GetDataOfferingID()))
		}
	}

	contracts, err := ah.store.ListContracts(ctx)
	if err != nil {
		return err
	}
	for _, c := range contracts {
		if c.GetDataRequestID() != requestID {
			continue
		}
		switch c.GetState() {
		case contract.States.REJECTED, contract.States.TERMINATED, contract.States.VIOLATED:
		default:
			return conflictError(ctx, "Data request already has a contract",
				fmt.Sprintf("request %s already backs contract %s", requestID, c.GetID()))
		}
	}

	// The template is taken read/write so the usage counter survives two
	// providers drafting contracts at the same time.
	tmpl, err := ah.store.GetTemplateRW(ctx, templateID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Contract template not found",
				fmt.Sprintf("contract with unknown template %s", templateID))
		}
		return err
	}
	if tmpl.GetConnectorID() != providerID {
		_ = ah.store.ReleaseTemplate(ctx, tmpl)
		return validationError(ctx, "Template does not belong to the provider connector",
			fmt.Sprintf("template %s belongs to %s, not %s",
				templateID, tmpl.GetConnectorID(), providerID))
	}
	if !tmpl.Usable() {
		_ = ah.store.ReleaseTemplate(ctx, tmpl)
		return conflictError(ctx, "Contract template is not active",
			fmt.Sprintf("contract with %s template %s", tmpl.GetState(), templateID))
	}

	c := contract.New(ctx, uuid.New(), msg.Name,
		providerID, consumerID, templateID, offeringID, requestID,
		"", expiresAt)
	if err := c.SetState(contract.States.PENDINGCONSUMER); err != nil {
		_ = ah.store.ReleaseTemplate(ctx, tmpl)
		return err
	}
	if err := ah.store.PutContract(ctx, c); err != nil {
		_ = ah.store.ReleaseTemplate(ctx, tmpl)
		return err
	}
	tmpl.IncrementUsage()
	if err := ah.store.PutTemplate(ctx, tmpl); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, c.ToModel())
}

// listContractsHandler handles GET /contracts, with the shared
// connector/role/status filters.
func (ah *apiHandlers) listContractsHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	filter, err := parseListFilter(ctx, req)
	if err != nil {
		return err
	}
	contracts, err := ah.store.ListContracts(ctx)
	if err != nil {
		return err
	}
	models := make([]contract.Model, 0, len(contracts))
	for _, c := range contracts {
		if !filter.matchesConnector(c.GetProviderConnectorID(), c.GetConsumerConnectorID()) {
			continue
		}
		if filter.status != "" && c.GetState().String() != filter.status {
			continue
		}
		models = append(models, c.ToModel())
	}
	return shared.EncodeValid(w, req, http.StatusOK, models)
}

// getContractHandler handles GET /contracts/{id}.
func (ah *apiHandlers) getContractHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	c, err := ah.store.GetContractR(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Contract not found", fmt.Sprintf("contract %s not found", id))
		}
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, c.ToModel())
}

// confirmContractHandler handles PUT /contracts/{id}/confirm, the consumer's
// decision on a pending_consumer contract. A confirm activates the contract,
// a reject finalises it.
func (ah *apiHandlers) confirmContractHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	msg, err := shared.DecodeValid[shared.ConfirmContractMessage](req)
	if err != nil {
		return validationError(ctx, "Invalid confirmation", err.Error())
	}
	target := contract.States.ACTIVE
	if msg.Action == "reject" {
		target = contract.States.REJECTED
	}

	c, err := ah.store.GetContractRW(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Contract not found", fmt.Sprintf("contract %s not found", id))
		}
		return err
	}
	if c.GetState() != contract.States.PENDINGCONSUMER {
		_ = ah.store.ReleaseContract(ctx, c)
		return conflictError(ctx,
			fmt.Sprintf("Contract is already %s", c.GetState()),
			fmt.Sprintf("confirmation on %s contract %s", c.GetState(), id))
	}
	if err := c.SetState(target); err != nil {
		_ = ah.store.ReleaseContract(ctx, c)
		return err
	}
	if err := ah.store.PutContract(ctx, c); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, c.ToModel())
}

// deployContractHandler handles POST /contracts/{id}/deploy, anchoring an
// active contract on the blockchain. Deployment happens at most once.
func (ah *apiHandlers) deployContractHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	c, err := ah.store.GetContractRW(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Contract not found", fmt.Sprintf("contract %s not found", id))
		}
		return err
	}
	if c.GetState() != contract.States.ACTIVE {
		_ = ah.store.ReleaseContract(ctx, c)
		return conflictError(ctx, "Contract is not active",
			fmt.Sprintf("deploy on %s contract %s", c.GetState(), id))
	}
	if c.Deployed() {
		_ = ah.store.ReleaseContract(ctx, c)
		return conflictError(ctx, "Contract is already deployed",
			fmt.Sprintf("second deploy on contract %s", id))
	}

	deployment, err := ah.deployer.Deploy(ctx, id)
	if err != nil {
		_ = ah.store.ReleaseContract(ctx, c)
		return apiError(ctx, http.StatusBadGateway, "Blockchain deployment failed", err.Error())
	}
	if err := c.SetDeployment(deployment.ContractAddress, deployment.TxID, deployment.Network); err != nil {
		_ = ah.store.ReleaseContract(ctx, c)
		return err
	}
	if err := ah.store.PutContract(ctx, c); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, shared.DeployReceipt{
		Message:           "Contract deployed",
		ContractAddress:   deployment.ContractAddress,
		BlockchainTxID:    deployment.TxID,
		BlockchainNetwork: deployment.Network,
	})
}

// terminateContractHandler handles PUT /contracts/{id}/terminate.
func (ah *apiHandlers) terminateContractHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.finishContract(w, req, contract.States.TERMINATED)
}

// violateContractHandler handles PUT /contracts/{id}/violate, flagging an
// active contract as breached.
func (ah *apiHandlers) violateContractHandler(w http.ResponseWriter, req *http.Request) error {
	return ah.finishContract(w, req, contract.States.VIOLATED)
}

// finishContract ends an active contract and marks the backing data request
// as completed.
func (ah *apiHandlers) finishContract(w http.ResponseWriter, req *http.Request, target contract.State) error {
	ctx := req.Context()
	id, err := parsePathID(ctx, req)
	if err != nil {
		return err
	}
	c, err := ah.store.GetContractRW(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFoundError(ctx, "Contract not found", fmt.Sprintf("contract %s not found", id))
		}
		return err
	}
	if c.GetState() != contract.States.ACTIVE {
		_ = ah.store.ReleaseContract(ctx, c)
		return conflictError(ctx, "Contract is not active",
			fmt.Sprintf("%s on %s contract %s", target, c.GetState(), id))
	}
	if err := c.SetState(target); err != nil {
		_ = ah.store.ReleaseContract(ctx, c)
		return err
	}
	if err := ah.store.PutContract(ctx, c); err != nil {
		return err
	}
	if err := completeRequest(ctx, ah.store, c.GetDataRequestID()); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, c.ToModel())
}
