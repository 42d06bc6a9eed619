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

// Package identity contains the connector, data space and user entities, plus
// the client for the upstream identity gateway that owns DID key material.
package identity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// Connector is an organisational endpoint identified by a DID. It can offer
// or consume data inside a data space.
type Connector struct {
	ID          uuid.UUID
	DID         string
	DisplayName string
	Status      string
	DataSpaceID string
	DIDDocument *shared.DIDDocument
	CreatedAt   time.Time
}

// GenerateConnectorStorageKey generates the storage key for a connector.
func GenerateConnectorStorageKey(id uuid.UUID) []byte {
	return []byte("connector-" + id.String())
}

// StorageKey returns the connector's storage key.
func (c *Connector) StorageKey() []byte {
	return GenerateConnectorStorageKey(c.ID)
}

// ConnectorModel is the wire/storage representation of a connector.
type ConnectorModel struct {
	ID          string              `json:"id" validate:"required,uuid"`
	DID         string              `json:"did" validate:"required"`
	DisplayName string              `json:"display_name" validate:"required"`
	Status      string              `json:"status" validate:"required"`
	DataSpaceID string              `json:"data_space_id" validate:"required"`
	DIDDocument *shared.DIDDocument `json:"did_document,omitempty"`
	CreatedAt   string              `json:"created_at" validate:"required"`
}

// ToModel converts the connector to its wire model.
func (c *Connector) ToModel() ConnectorModel {
	return ConnectorModel{
		ID:          c.ID.String(),
		DID:         c.DID,
		DisplayName: c.DisplayName,
		Status:      c.Status,
		DataSpaceID: c.DataSpaceID,
		DIDDocument: c.DIDDocument,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

// ConnectorFromModel converts a wire model back into a connector.
func ConnectorFromModel(m ConnectorModel) (*Connector, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &Connector{
		ID:          id,
		DID:         m.DID,
		DisplayName: m.DisplayName,
		Status:      m.Status,
		DataSpaceID: m.DataSpaceID,
		DIDDocument: m.DIDDocument,
		CreatedAt:   createdAt,
	}, nil
}

// ToBytes serialises the connector for storage.
func (c *Connector) ToBytes() ([]byte, error) {
	return json.Marshal(c.ToModel())
}

// ConnectorFromBytes deserialises a stored connector.
func ConnectorFromBytes(b []byte) (*Connector, error) {
	var m ConnectorModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return ConnectorFromModel(m)
}

// DataSpace is a named space connectors are grouped in. Data spaces are
// configuration, seeded at startup.
type DataSpace struct {
	ID          string `json:"id" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// GenerateDataSpaceStorageKey generates the storage key for a data space.
func GenerateDataSpaceStorageKey(id string) []byte {
	return []byte("dataspace-" + id)
}

// StorageKey returns the data space's storage key.
func (d *DataSpace) StorageKey() []byte {
	return GenerateDataSpaceStorageKey(d.ID)
}

// ToBytes serialises the data space for storage.
func (d *DataSpace) ToBytes() ([]byte, error) {
	return json.Marshal(d)
}

// DataSpaceFromBytes deserialises a stored data space.
func DataSpaceFromBytes(b []byte) (*DataSpace, error) {
	var d DataSpace
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// User is a dashboard user, identified by their DID. Signature verification
// is delegated to the identity gateway and not done here.
type User struct {
	ID       uuid.UUID
	DID      string
	Username string
	Email    string
}

// GenerateUserStorageKey generates the storage key for a user. Users are
// keyed by DID as that is the login identifier.
func GenerateUserStorageKey(did string) []byte {
	return []byte("user-" + did)
}

// StorageKey returns the user's storage key.
func (u *User) StorageKey() []byte {
	return GenerateUserStorageKey(u.DID)
}

type userModel struct {
	ID       string `json:"id"`
	DID      string `json:"did"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ToBytes serialises the user for storage.
func (u *User) ToBytes() ([]byte, error) {
	return json.Marshal(userModel{
		ID:       u.ID.String(),
		DID:      u.DID,
		Username: u.Username,
		Email:    u.Email,
	})
}

// UserFromBytes deserialises a stored user.
func UserFromBytes(b []byte) (*User, error) {
	var m userModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       id,
		DID:      m.DID,
		Username: m.Username,
		Email:    m.Email,
	}, nil
}

// ToWire converts the user to its API representation.
func (u *User) ToWire() shared.User {
	return shared.User{
		ID:       u.ID.String(),
		DID:      u.DID,
		Username: u.Username,
		Email:    u.Email,
	}
}
