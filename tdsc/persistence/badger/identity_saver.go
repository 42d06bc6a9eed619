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

package badger

import (
	"context"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
)

var (
	connectorPrefix = []byte("connector-")
	dataSpacePrefix = []byte("dataspace-")
)

// GetConnector gets a connector by ID.
func (sp *StorageProvider) GetConnector(ctx context.Context, id uuid.UUID) (*identity.Connector, error) {
	b, err := get(sp.db, identity.GenerateConnectorStorageKey(id))
	if err != nil {
		logging.Extract(ctx).Debug("could not get connector", "connectorID", id.String(), "err", err)
		return nil, err
	}
	return identity.ConnectorFromBytes(b)
}

// ListConnectors returns all registered connectors.
func (sp *StorageProvider) ListConnectors(ctx context.Context) ([]*identity.Connector, error) {
	values, err := getAll(sp.db, connectorPrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list connectors", "err", err)
		return nil, err
	}
	connectors := make([]*identity.Connector, 0, len(values))
	for _, b := range values {
		c, err := identity.ConnectorFromBytes(b)
		if err != nil {
			return nil, err
		}
		connectors = append(connectors, c)
	}
	return connectors, nil
}

// PutConnector stores a connector, erroring if the ID already exists.
func (sp *StorageProvider) PutConnector(ctx context.Context, c *identity.Connector) error {
	b, err := c.ToBytes()
	if err != nil {
		return err
	}
	return putOnce(sp.db, c.StorageKey(), b)
}

// ListDataSpaces returns all data spaces.
func (sp *StorageProvider) ListDataSpaces(ctx context.Context) ([]*identity.DataSpace, error) {
	values, err := getAll(sp.db, dataSpacePrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list data spaces", "err", err)
		return nil, err
	}
	spaces := make([]*identity.DataSpace, 0, len(values))
	for _, b := range values {
		d, err := identity.DataSpaceFromBytes(b)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, d)
	}
	return spaces, nil
}

// PutDataSpace stores a data space. Data spaces are configuration, so this
// overwrites a previous seed for the same ID.
func (sp *StorageProvider) PutDataSpace(_ context.Context, d *identity.DataSpace) error {
	b, err := d.ToBytes()
	if err != nil {
		return err
	}
	return put(sp.db, d.StorageKey(), b)
}

// GetUser gets a user by DID.
func (sp *StorageProvider) GetUser(ctx context.Context, did string) (*identity.User, error) {
	b, err := get(sp.db, identity.GenerateUserStorageKey(did))
	if err != nil {
		logging.Extract(ctx).Debug("could not get user", "did", did, "err", err)
		return nil, err
	}
	return identity.UserFromBytes(b)
}

// PutUser stores a user, erroring if the DID is already registered.
func (sp *StorageProvider) PutUser(_ context.Context, u *identity.User) error {
	b, err := u.ToBytes()
	if err != nil {
		return err
	}
	return putOnce(sp.db, u.StorageKey(), b)
}
