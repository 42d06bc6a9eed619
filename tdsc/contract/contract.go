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

// Package contract contains the data contract entity and its state machine.
// A contract is derived from exactly one approved data request and governs
// the terms under which the data is shared.
package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
)

// State is the state of a data contract.
type State string

func (s State) String() string { return string(s) }

// States contains all valid contract states.
var States = struct {
	DRAFT           State
	PENDINGCONSUMER State
	ACTIVE          State
	EXPIRED         State
	REJECTED        State
	TERMINATED      State
	VIOLATED        State
}{
	DRAFT:           "draft",
	PENDINGCONSUMER: "pending_consumer",
	ACTIVE:          "active",
	EXPIRED:         "expired",
	REJECTED:        "rejected",
	TERMINATED:      "terminated",
	VIOLATED:        "violated",
}

// ParseState parses a state string into a State.
func ParseState(s string) (State, error) {
	state := State(s)
	switch state {
	case States.DRAFT, States.PENDINGCONSUMER, States.ACTIVE, States.EXPIRED,
		States.REJECTED, States.TERMINATED, States.VIOLATED:
		return state, nil
	default:
		return state, fmt.Errorf("invalid contract state: %s", s)
	}
}

var validTransitions = map[State][]State{
	States.DRAFT: {
		States.PENDINGCONSUMER,
	},
	States.PENDINGCONSUMER: {
		States.ACTIVE,
		States.REJECTED,
	},
	States.ACTIVE: {
		States.EXPIRED,
		States.TERMINATED,
		States.VIOLATED,
	},
	States.EXPIRED:    {},
	States.REJECTED:   {},
	States.TERMINATED: {},
	States.VIOLATED:   {},
}

// Contract represents a data sharing contract.
type Contract struct {
	id                  uuid.UUID
	name                string
	state               State
	providerConnectorID uuid.UUID
	consumerConnectorID uuid.UUID
	contractTemplateID  uuid.UUID
	dataOfferingID      uuid.UUID
	dataRequestID       uuid.UUID
	contractAddress     string
	blockchainTxID      string
	blockchainNetwork   string
	expiresAt           time.Time
	createdAt           time.Time
	updatedAt           time.Time

	ro       bool
	modified bool
}

// New creates a new contract in the draft state.
func New(
	ctx context.Context,
	id uuid.UUID,
	name string,
	providerConnectorID, consumerConnectorID uuid.UUID,
	contractTemplateID, dataOfferingID, dataRequestID uuid.UUID,
	blockchainNetwork string,
	expiresAt time.Time,
) *Contract {
	c := &Contract{
		id:                  id,
		name:                name,
		state:               States.DRAFT,
		providerConnectorID: providerConnectorID,
		consumerConnectorID: consumerConnectorID,
		contractTemplateID:  contractTemplateID,
		dataOfferingID:      dataOfferingID,
		dataRequestID:       dataRequestID,
		blockchainNetwork:   blockchainNetwork,
		expiresAt:           expiresAt,
		createdAt:           time.Now().UTC(),
		modified:            true,
	}
	logging.Extract(ctx).Info("creating new contract", c.GetLogFields("")...)
	return c
}

// GenerateStorageKey generates the storage key for a contract.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("contract-" + id.String())
}

// Contract getters.
func (c *Contract) GetID() uuid.UUID                  { return c.id }
func (c *Contract) GetName() string                   { return c.name }
func (c *Contract) GetState() State                   { return c.state }
func (c *Contract) GetProviderConnectorID() uuid.UUID { return c.providerConnectorID }
func (c *Contract) GetConsumerConnectorID() uuid.UUID { return c.consumerConnectorID }
func (c *Contract) GetContractTemplateID() uuid.UUID  { return c.contractTemplateID }
func (c *Contract) GetDataOfferingID() uuid.UUID      { return c.dataOfferingID }
func (c *Contract) GetDataRequestID() uuid.UUID       { return c.dataRequestID }
func (c *Contract) GetContractAddress() string        { return c.contractAddress }
func (c *Contract) GetBlockchainTxID() string         { return c.blockchainTxID }
func (c *Contract) GetBlockchainNetwork() string      { return c.blockchainNetwork }
func (c *Contract) GetExpiresAt() time.Time           { return c.expiresAt }
func (c *Contract) GetCreatedAt() time.Time           { return c.createdAt }
func (c *Contract) GetUpdatedAt() time.Time           { return c.updatedAt }

// Deployed reports whether the contract has been deployed on chain.
func (c *Contract) Deployed() bool { return c.contractAddress != "" }

// Expirable reports whether the contract can still expire: it is active and
// carries a deadline.
func (c *Contract) Expirable() bool {
	return c.state == States.ACTIVE && !c.expiresAt.IsZero()
}

// GetLogFields returns relevant log fields for the contract.
// The suffix argument will append a suffix to the keys.
func (c *Contract) GetLogFields(suffix string) []any {
	return []any{
		"contractID" + suffix, c.id.String(),
		"name" + suffix, c.name,
		"state" + suffix, c.state.String(),
		"providerConnectorID" + suffix, c.providerConnectorID.String(),
		"consumerConnectorID" + suffix, c.consumerConnectorID.String(),
		"dataRequestID" + suffix, c.dataRequestID.String(),
	}
}

// SetState transitions the contract, only allowing the forward edges of the
// contract lifecycle. Every transition stamps updatedAt.
func (c *Contract) SetState(state State) error {
	c.panicRO()
	if !slices.Contains(validTransitions[c.state], state) {
		return fmt.Errorf("can't transition from %s to %s", c.state, state)
	}
	c.state = state
	c.updatedAt = time.Now().UTC()
	c.modify()
	return nil
}

// SetDeployment records the on-chain deployment result. Only valid once, and
// only on an active contract.
func (c *Contract) SetDeployment(address, txID, network string) error {
	c.panicRO()
	if c.state != States.ACTIVE {
		return fmt.Errorf("can't deploy a contract in state %s", c.state)
	}
	if c.Deployed() {
		return fmt.Errorf("contract already deployed at %s", c.contractAddress)
	}
	c.contractAddress = address
	c.blockchainTxID = txID
	c.blockchainNetwork = network
	c.updatedAt = time.Now().UTC()
	c.modify()
	return nil
}

// Properties that storage decisions are based on.
func (c *Contract) ReadOnly() bool { return c.ro }
func (c *Contract) Modified() bool { return c.modified }
func (c *Contract) StorageKey() []byte {
	return GenerateStorageKey(c.id)
}

// SetReadOnly marks the contract read-only, saving it after this panics.
func (c *Contract) SetReadOnly() { c.ro = true }

func (c *Contract) panicRO() {
	if c.ro {
		panic("Trying to write to a read-only contract, this is certainly a bug.")
	}
}

func (c *Contract) modify() {
	c.modified = true
}

// Model is the wire/storage representation of a contract.
type Model struct {
	ID                  string `json:"id" validate:"required,uuid"`
	Name                string `json:"name" validate:"required"`
	Status              string `json:"status" validate:"required"`
	ProviderConnectorID string `json:"provider_connector_id" validate:"required,uuid"`
	ConsumerConnectorID string `json:"consumer_connector_id" validate:"required,uuid"`
	ContractTemplateID  string `json:"contract_template_id" validate:"required,uuid"`
	DataOfferingID      string `json:"data_offering_id" validate:"required,uuid"`
	DataRequestID       string `json:"data_request_id,omitempty"`
	ContractAddress     string `json:"contract_address,omitempty"`
	BlockchainTxID      string `json:"blockchain_tx_id,omitempty"`
	BlockchainNetwork   string `json:"blockchain_network,omitempty"`
	ExpiresAt           string `json:"expires_at,omitempty"`
	CreatedAt           string `json:"created_at" validate:"required"`
	UpdatedAt           string `json:"updated_at,omitempty"`
}

// ToModel converts the contract to its wire model.
func (c *Contract) ToModel() Model {
	expires := ""
	if !c.expiresAt.IsZero() {
		expires = c.expiresAt.Format(time.RFC3339)
	}
	updated := ""
	if !c.updatedAt.IsZero() {
		updated = c.updatedAt.Format(time.RFC3339)
	}
	return Model{
		ID:                  c.id.String(),
		Name:                c.name,
		Status:              c.state.String(),
		ProviderConnectorID: c.providerConnectorID.String(),
		ConsumerConnectorID: c.consumerConnectorID.String(),
		ContractTemplateID:  c.contractTemplateID.String(),
		DataOfferingID:      c.dataOfferingID.String(),
		DataRequestID:       c.dataRequestID.String(),
		ContractAddress:     c.contractAddress,
		BlockchainTxID:      c.blockchainTxID,
		BlockchainNetwork:   c.blockchainNetwork,
		ExpiresAt:           expires,
		CreatedAt:           c.createdAt.Format(time.RFC3339),
		UpdatedAt:           updated,
	}
}

// FromModel converts a wire model back into a contract.
//
//nolint:cyclop // straight field conversion, not worth splitting.
func FromModel(m Model) (*Contract, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	providerID, err := uuid.Parse(m.ProviderConnectorID)
	if err != nil {
		return nil, err
	}
	consumerID, err := uuid.Parse(m.ConsumerConnectorID)
	if err != nil {
		return nil, err
	}
	templateID, err := uuid.Parse(m.ContractTemplateID)
	if err != nil {
		return nil, err
	}
	offeringID, err := uuid.Parse(m.DataOfferingID)
	if err != nil {
		return nil, err
	}
	requestID := uuid.UUID{}
	if m.DataRequestID != "" {
		requestID, err = uuid.Parse(m.DataRequestID)
		if err != nil {
			return nil, err
		}
	}
	state, err := ParseState(m.Status)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	var expiresAt time.Time
	if m.ExpiresAt != "" {
		expiresAt, err = time.Parse(time.RFC3339, m.ExpiresAt)
		if err != nil {
			return nil, err
		}
	}
	var updatedAt time.Time
	if m.UpdatedAt != "" {
		updatedAt, err = time.Parse(time.RFC3339, m.UpdatedAt)
		if err != nil {
			return nil, err
		}
	}
	return &Contract{
		id:                  id,
		name:                m.Name,
		state:               state,
		providerConnectorID: providerID,
		consumerConnectorID: consumerID,
		contractTemplateID:  templateID,
		dataOfferingID:      offeringID,
		dataRequestID:       requestID,
		contractAddress:     m.ContractAddress,
		blockchainTxID:      m.BlockchainTxID,
		blockchainNetwork:   m.BlockchainNetwork,
		expiresAt:           expiresAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

// ToBytes serialises the contract for storage.
func (c *Contract) ToBytes() ([]byte, error) {
	return json.Marshal(c.ToModel())
}

// FromBytes deserialises a stored contract.
func FromBytes(b []byte) (*Contract, error) {
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return FromModel(m)
}
