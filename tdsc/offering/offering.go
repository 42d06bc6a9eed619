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

// Package offering contains the data offering entity. Offerings are published
// by a provider connector and are the target of data requests.
package offering

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status enums of an offering. Unlike requests and contracts these have no
// client-driven transitions, the registration pipeline updates them wholesale.
type (
	Status                 string
	RegistrationStatus     string
	HostingStatus          string
	CrossBorderAuditStatus string
	DataType               string
)

// Offering statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Registration statuses.
const (
	RegistrationRegistered   RegistrationStatus = "registered"
	RegistrationUnregistered RegistrationStatus = "unregistered"
	RegistrationRegistering  RegistrationStatus = "registering"
	RegistrationFailed       RegistrationStatus = "failed"
)

// Hosting statuses.
const (
	HostingHosted      HostingStatus = "hosted"
	HostingSelfManaged HostingStatus = "self_managed"
	HostingPending     HostingStatus = "pending"
)

// Cross-border audit statuses.
const (
	AuditApproved    CrossBorderAuditStatus = "approved"
	AuditPending     CrossBorderAuditStatus = "pending"
	AuditRejected    CrossBorderAuditStatus = "rejected"
	AuditNotRequired CrossBorderAuditStatus = "not_required"
)

// Data source types.
const (
	TypeLocalFile DataType = "local_file"
	TypeS3        DataType = "s3"
	TypeNAS       DataType = "nas"
	TypeRESTful   DataType = "restful"
)

// Offering represents a published data offering. Offerings are immutable once
// registered, which keeps their storage lock-free.
type Offering struct {
	ID                     uuid.UUID
	ConnectorID            uuid.UUID
	Title                  string
	Description            string
	DataType               DataType
	AccessPolicy           string
	Status                 Status
	RegistrationStatus     RegistrationStatus
	HostingStatus          HostingStatus
	CrossBorderAuditStatus CrossBorderAuditStatus
	DataZoneCode           string
	StorageLocation        string
	CreatedAt              time.Time
}

// GenerateStorageKey generates the storage key for an offering.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("offering-" + id.String())
}

// StorageKey returns the offering's storage key.
func (o *Offering) StorageKey() []byte {
	return GenerateStorageKey(o.ID)
}

// Requestable reports whether consumers may file data requests against the
// offering.
func (o *Offering) Requestable() bool {
	return o.Status == StatusActive
}

// Model is the wire/storage representation of an offering.
type Model struct {
	ID                     string `json:"id" validate:"required,uuid"`
	ConnectorID            string `json:"connector_id" validate:"required,uuid"`
	Title                  string `json:"title" validate:"required"`
	Description            string `json:"description,omitempty"`
	DataType               string `json:"data_type" validate:"required,oneof=local_file s3 nas restful"`
	AccessPolicy           string `json:"access_policy,omitempty"`
	Status                 string `json:"status" validate:"required,oneof=active inactive pending"`
	RegistrationStatus     string `json:"registration_status" validate:"required,oneof=registered unregistered registering failed"`
	HostingStatus          string `json:"hosting_status" validate:"required,oneof=hosted self_managed pending"`
	CrossBorderAuditStatus string `json:"cross_border_audit_status" validate:"required,oneof=approved pending rejected not_required"`
	DataZoneCode           string `json:"data_zone_code,omitempty"`
	StorageLocation        string `json:"storage_location,omitempty"`
	CreatedAt              string `json:"created_at" validate:"required"`
}

// ToModel converts the offering to its wire model.
func (o *Offering) ToModel() Model {
	return Model{
		ID:                     o.ID.String(),
		ConnectorID:            o.ConnectorID.String(),
		Title:                  o.Title,
		Description:            o.Description,
		DataType:               string(o.DataType),
		AccessPolicy:           o.AccessPolicy,
		Status:                 string(o.Status),
		RegistrationStatus:     string(o.RegistrationStatus),
		HostingStatus:          string(o.HostingStatus),
		CrossBorderAuditStatus: string(o.CrossBorderAuditStatus),
		DataZoneCode:           o.DataZoneCode,
		StorageLocation:        o.StorageLocation,
		CreatedAt:              o.CreatedAt.Format(time.RFC3339),
	}
}

// FromModel converts a wire model back into an offering.
func FromModel(m Model) (*Offering, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	connectorID, err := uuid.Parse(m.ConnectorID)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	return &Offering{
		ID:                     id,
		ConnectorID:            connectorID,
		Title:                  m.Title,
		Description:            m.Description,
		DataType:               DataType(m.DataType),
		AccessPolicy:           m.AccessPolicy,
		Status:                 Status(m.Status),
		RegistrationStatus:     RegistrationStatus(m.RegistrationStatus),
		HostingStatus:          HostingStatus(m.HostingStatus),
		CrossBorderAuditStatus: CrossBorderAuditStatus(m.CrossBorderAuditStatus),
		DataZoneCode:           m.DataZoneCode,
		StorageLocation:        m.StorageLocation,
		CreatedAt:              createdAt,
	}, nil
}

// ToBytes serialises the offering for storage.
func (o *Offering) ToBytes() ([]byte, error) {
	return json.Marshal(o.ToModel())
}

// FromBytes deserialises a stored offering.
func FromBytes(b []byte) (*Offering, error) {
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return FromModel(m)
}
