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

// Package shared contains the wire messages and HTTP helpers shared by the
// connector handlers and clients. All wire fields are snake_case.
package shared

// DetailError is the error body every non-2xx response carries.
type DetailError struct {
	Detail string `json:"detail" validate:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	DID       string `json:"did" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	DID       string `json:"did" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
}

// User is the wire representation of an authenticated user.
type User struct {
	ID       string `json:"id" validate:"required"`
	DID      string `json:"did" validate:"required"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user"`
}

// CreateDataRequestMessage is the body of POST /data-requests.
type CreateDataRequestMessage struct {
	DataOfferingID      string `json:"data_offering_id" validate:"required"`
	ConsumerConnectorID string `json:"consumer_connector_id" validate:"required"`
	Purpose             string `json:"purpose" validate:"required"`
	AccessMode          string `json:"access_mode" validate:"required,oneof=api download"`
}

// CreateOfferingMessage is the body of POST /offerings.
type CreateOfferingMessage struct {
	ConnectorID     string `json:"connector_id" validate:"required,uuid"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description,omitempty"`
	DataType        string `json:"data_type" validate:"required,oneof=local_file s3 nas restful"`
	AccessPolicy    string `json:"access_policy,omitempty"`
	HostingStatus   string `json:"hosting_status,omitempty" validate:"omitempty,oneof=hosted self_managed pending"`
	DataZoneCode    string `json:"data_zone_code,omitempty"`
	StorageLocation string `json:"storage_location,omitempty"`
}

// CreateContractMessage is the body of POST /contracts.
// Consumer connector and data offering may be omitted, in which case they are
// resolved from the referenced data request.
type CreateContractMessage struct {
	Name                string `json:"name" validate:"required"`
	ProviderConnectorID string `json:"provider_connector_id" validate:"required"`
	ConsumerConnectorID string `json:"consumer_connector_id,omitempty"`
	ContractTemplateID  string `json:"contract_template_id" validate:"required"`
	DataOfferingID      string `json:"data_offering_id,omitempty"`
	DataRequestID       string `json:"data_request_id" validate:"required"`
	ExpiresAt           string `json:"expires_at,omitempty"`
}

// ConfirmContractMessage is the body of PUT /contracts/{id}/confirm.
type ConfirmContractMessage struct {
	Action string `json:"action" validate:"required,oneof=confirm reject"`
}

// DeployReceipt is returned by POST /contracts/{id}/deploy.
type DeployReceipt struct {
	Message           string `json:"message" validate:"required"`
	ContractAddress   string `json:"contract_address" validate:"required"`
	BlockchainTxID    string `json:"blockchain_tx_id" validate:"required"`
	BlockchainNetwork string `json:"blockchain_network" validate:"required"`
}

// RegisterConnectorMessage is the body of POST /identity/did/register.
type RegisterConnectorMessage struct {
	DID         string       `json:"did" validate:"required"`
	DisplayName string       `json:"display_name" validate:"required"`
	DataSpaceID string       `json:"data_space_id" validate:"required"`
	DIDDocument *DIDDocument `json:"did_document,omitempty"`
}

// DIDDocument is a decentralized identifier document.
type DIDDocument struct {
	Context            []string             `json:"@context,omitempty"`
	ID                 string               `json:"id" validate:"required"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication     []string             `json:"authentication,omitempty"`
	Service            []ServiceEndpoint    `json:"service,omitempty"`
}

// VerificationMethod is a key reference inside a DID document.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
}

// ServiceEndpoint is a service reference inside a DID document.
type ServiceEndpoint struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// GenerateDIDResponse is what the upstream identity gateway returns for a
// DID generation request, passed through verbatim.
type GenerateDIDResponse struct {
	DID         string       `json:"did" validate:"required"`
	PublicKey   string       `json:"publicKey,omitempty"`
	DIDDocument *DIDDocument `json:"didDocument,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}
