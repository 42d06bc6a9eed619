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

// Package persistence contains the storage interfaces for the connector. It
// also contains shared constants for the implementation packages.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

// ErrNotFound is returned when an entity doesn't exist in the store.
var ErrNotFound = errors.New("not found")

// StorageProvider is an interface that combines all the *Saver interfaces.
type StorageProvider interface {
	RequestSaver
	ContractSaver
	TemplateSaver
	OfferingSaver
	ConnectorSaver
	DataSpaceSaver
	UserSaver
	TokenSaver
}

// RequestSaver stores and retrieves data requests. It supports read-only and
// read/write versions: read-only is enforced at save time, and it is up to
// the implementer to lock requests handed out read/write, so that approve and
// reject never race.
type RequestSaver interface {
	// GetRequestR gets a read-only version of a data request.
	GetRequestR(ctx context.Context, id uuid.UUID) (*request.Request, error)
	// GetRequestRW gets a read/write version of a data request, holding its
	// entity lock until it is put back or released.
	GetRequestRW(ctx context.Context, id uuid.UUID) (*request.Request, error)
	// ListRequests returns read-only versions of all data requests.
	ListRequests(ctx context.Context) ([]*request.Request, error)
	// PutRequest saves a request and releases its lock. Errors on read-only
	// requests.
	PutRequest(ctx context.Context, req *request.Request) error
	// ReleaseRequest releases any lock the request holds without saving.
	ReleaseRequest(ctx context.Context, req *request.Request) error
}

// ContractSaver stores and retrieves contracts, with the same read/write
// semantics as RequestSaver.
type ContractSaver interface {
	GetContractR(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	GetContractRW(ctx context.Context, id uuid.UUID) (*contract.Contract, error)
	ListContracts(ctx context.Context) ([]*contract.Contract, error)
	PutContract(ctx context.Context, c *contract.Contract) error
	ReleaseContract(ctx context.Context, c *contract.Contract) error
}

// TemplateSaver stores and retrieves contract templates, with the same
// read/write semantics as RequestSaver.
type TemplateSaver interface {
	GetTemplateR(ctx context.Context, id uuid.UUID) (*template.Template, error)
	GetTemplateRW(ctx context.Context, id uuid.UUID) (*template.Template, error)
	ListTemplates(ctx context.Context) ([]*template.Template, error)
	PutTemplate(ctx context.Context, t *template.Template) error
	ReleaseTemplate(ctx context.Context, t *template.Template) error
}

// OfferingSaver stores offerings. Offerings are immutable so there is no
// locking involved.
type OfferingSaver interface {
	GetOffering(ctx context.Context, id uuid.UUID) (*offering.Offering, error)
	ListOfferings(ctx context.Context) ([]*offering.Offering, error)
	// PutOffering stores an offering, erroring if the ID already exists.
	PutOffering(ctx context.Context, o *offering.Offering) error
}

// ConnectorSaver stores connectors. Connectors are immutable after
// registration.
type ConnectorSaver interface {
	GetConnector(ctx context.Context, id uuid.UUID) (*identity.Connector, error)
	ListConnectors(ctx context.Context) ([]*identity.Connector, error)
	PutConnector(ctx context.Context, c *identity.Connector) error
}

// DataSpaceSaver stores data spaces, seeded from configuration.
type DataSpaceSaver interface {
	ListDataSpaces(ctx context.Context) ([]*identity.DataSpace, error)
	PutDataSpace(ctx context.Context, d *identity.DataSpace) error
}

// UserSaver stores users, keyed by DID.
type UserSaver interface {
	GetUser(ctx context.Context, did string) (*identity.User, error)
	PutUser(ctx context.Context, u *identity.User) error
}

// TokenSaver saves a bearer token to a user DID, no locking necessary as a
// token is immutable. Implementations should expire tokens.
type TokenSaver interface {
	// GetToken retrieves the DID a token belongs to.
	GetToken(ctx context.Context, token string) (string, error)
	// DelToken deletes a token.
	DelToken(ctx context.Context, token string) error
	// PutToken stores a token/DID combination.
	PutToken(ctx context.Context, token, did string) error
}
