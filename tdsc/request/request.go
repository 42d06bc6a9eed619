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

// Package request contains the data request entity and its state machine.
// A data request is a consumer's ask for access to a provider's data
// offering, and is the precondition for a contract.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
)

// State is the state of a data request.
type State string

func (s State) String() string { return string(s) }

// States contains all valid data request states.
var States = struct {
	PENDING   State
	APPROVED  State
	REJECTED  State
	COMPLETED State
}{
	PENDING:   "pending",
	APPROVED:  "approved",
	REJECTED:  "rejected",
	COMPLETED: "completed",
}

// ParseState parses a state string into a State.
func ParseState(s string) (State, error) {
	state := State(s)
	switch state {
	case States.PENDING, States.APPROVED, States.REJECTED, States.COMPLETED:
		return state, nil
	default:
		return state, fmt.Errorf("invalid data request state: %s", s)
	}
}

var validTransitions = map[State][]State{
	States.PENDING: {
		States.APPROVED,
		States.REJECTED,
	},
	States.APPROVED: {
		States.COMPLETED,
	},
	States.REJECTED:  {},
	States.COMPLETED: {},
}

// AccessMode is how the consumer wants to access the data.
type AccessMode string

// Access modes.
const (
	AccessModeAPI      AccessMode = "api"
	AccessModeDownload AccessMode = "download"
)

// ParseAccessMode parses an access mode string.
func ParseAccessMode(s string) (AccessMode, error) {
	mode := AccessMode(s)
	switch mode {
	case AccessModeAPI, AccessModeDownload:
		return mode, nil
	default:
		return mode, fmt.Errorf("invalid access mode: %s", s)
	}
}

// Request represents a data access request.
type Request struct {
	id                  uuid.UUID
	dataOfferingID      uuid.UUID
	providerConnectorID uuid.UUID
	consumerConnectorID uuid.UUID
	purpose             string
	accessMode          AccessMode
	state               State
	createdAt           time.Time
	updatedAt           time.Time

	ro       bool
	modified bool
}

// New creates a new pending data request. The provider connector is resolved
// from the offering by the caller.
func New(
	ctx context.Context,
	id, dataOfferingID, providerConnectorID, consumerConnectorID uuid.UUID,
	purpose string,
	accessMode AccessMode,
) *Request {
	req := &Request{
		id:                  id,
		dataOfferingID:      dataOfferingID,
		providerConnectorID: providerConnectorID,
		consumerConnectorID: consumerConnectorID,
		purpose:             purpose,
		accessMode:          accessMode,
		state:               States.PENDING,
		createdAt:           time.Now().UTC(),
		modified:            true,
	}
	logging.Extract(ctx).Info("creating new data request", req.GetLogFields("")...)
	return req
}

// GenerateStorageKey generates the storage key for a data request.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("request-" + id.String())
}

// Request getters.
func (r *Request) GetID() uuid.UUID                  { return r.id }
func (r *Request) GetDataOfferingID() uuid.UUID      { return r.dataOfferingID }
func (r *Request) GetProviderConnectorID() uuid.UUID { return r.providerConnectorID }
func (r *Request) GetConsumerConnectorID() uuid.UUID { return r.consumerConnectorID }
func (r *Request) GetPurpose() string                { return r.purpose }
func (r *Request) GetAccessMode() AccessMode         { return r.accessMode }
func (r *Request) GetState() State                   { return r.state }
func (r *Request) GetCreatedAt() time.Time           { return r.createdAt }
func (r *Request) GetUpdatedAt() time.Time           { return r.updatedAt }

// GetLogFields returns relevant log fields for the request.
// The suffix argument will append a suffix to the keys.
func (r *Request) GetLogFields(suffix string) []any {
	return []any{
		"requestID" + suffix, r.id.String(),
		"dataOfferingID" + suffix, r.dataOfferingID.String(),
		"consumerConnectorID" + suffix, r.consumerConnectorID.String(),
		"state" + suffix, r.state.String(),
		"accessMode" + suffix, string(r.accessMode),
	}
}

// SetState transitions the request, only allowing the forward edges of the
// request lifecycle. Every transition stamps updatedAt.
func (r *Request) SetState(state State) error {
	r.panicRO()
	if !slices.Contains(validTransitions[r.state], state) {
		return fmt.Errorf("can't transition from %s to %s", r.state, state)
	}
	r.state = state
	r.updatedAt = time.Now().UTC()
	r.modify()
	return nil
}

// Properties that storage decisions are based on.
func (r *Request) ReadOnly() bool { return r.ro }
func (r *Request) Modified() bool { return r.modified }
func (r *Request) StorageKey() []byte {
	return GenerateStorageKey(r.id)
}

// SetReadOnly marks the request read-only, saving it after this panics.
func (r *Request) SetReadOnly() { r.ro = true }

func (r *Request) panicRO() {
	if r.ro {
		panic("Trying to write to a read-only data request, this is certainly a bug.")
	}
}

func (r *Request) modify() {
	r.modified = true
}

// Model is the wire/storage representation of a data request, snake_case as
// all connector payloads are.
type Model struct {
	ID                  string `json:"id" validate:"required,uuid"`
	DataOfferingID      string `json:"data_offering_id" validate:"required,uuid"`
	ProviderConnectorID string `json:"provider_connector_id" validate:"required,uuid"`
	ConsumerConnectorID string `json:"consumer_connector_id" validate:"required,uuid"`
	Purpose             string `json:"purpose" validate:"required"`
	AccessMode          string `json:"access_mode" validate:"required,oneof=api download"`
	Status              string `json:"status" validate:"required"`
	CreatedAt           string `json:"created_at" validate:"required"`
	UpdatedAt           string `json:"updated_at,omitempty"`
}

// ToModel converts the request to its wire model.
func (r *Request) ToModel() Model {
	updated := ""
	if !r.updatedAt.IsZero() {
		updated = r.updatedAt.Format(time.RFC3339)
	}
	return Model{
		ID:                  r.id.String(),
		DataOfferingID:      r.dataOfferingID.String(),
		ProviderConnectorID: r.providerConnectorID.String(),
		ConsumerConnectorID: r.consumerConnectorID.String(),
		Purpose:             r.purpose,
		AccessMode:          string(r.accessMode),
		Status:              r.state.String(),
		CreatedAt:           r.createdAt.Format(time.RFC3339),
		UpdatedAt:           updated,
	}
}

// FromModel converts a wire model back into a request.
func FromModel(m Model) (*Request, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	offeringID, err := uuid.Parse(m.DataOfferingID)
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
	state, err := ParseState(m.Status)
	if err != nil {
		return nil, err
	}
	mode, err := ParseAccessMode(m.AccessMode)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	var updatedAt time.Time
	if m.UpdatedAt != "" {
		updatedAt, err = time.Parse(time.RFC3339, m.UpdatedAt)
		if err != nil {
			return nil, err
		}
	}
	return &Request{
		id:                  id,
		dataOfferingID:      offeringID,
		providerConnectorID: providerID,
		consumerConnectorID: consumerID,
		purpose:             m.Purpose,
		accessMode:          mode,
		state:               state,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

// ToBytes serialises the request for storage.
func (r *Request) ToBytes() ([]byte, error) {
	return json.Marshal(r.ToModel())
}

// FromBytes deserialises a stored request.
func FromBytes(b []byte) (*Request, error) {
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return FromModel(m)
}
