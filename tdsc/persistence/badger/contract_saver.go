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
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
)

var contractPrefix = []byte("contract-")

// GetContractR gets a contract and sets the read-only property.
func (sp *StorageProvider) GetContractR(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	key := contract.GenerateStorageKey(id)
	_, logger := logging.InjectLabels(ctx, "contractID", id.String(), "key", string(key))
	b, err := get(sp.db, key)
	if err != nil {
		logger.Debug("could not get contract", "err", err)
		return nil, err
	}
	c, err := contract.FromBytes(b)
	if err != nil {
		return nil, err
	}

	c.SetReadOnly()
	return c, nil
}

// GetContractRW gets a contract but does NOT set the read-only property,
// allowing changes to be saved. It holds the contract's entity lock until the
// contract is put back or released.
func (sp *StorageProvider) GetContractRW(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	key := contract.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "contract", "contractID", id.String())
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	c, err := contract.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return c, nil
}

// ListContracts returns read-only versions of all contracts.
func (sp *StorageProvider) ListContracts(ctx context.Context) ([]*contract.Contract, error) {
	values, err := getAll(sp.db, contractPrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list contracts", "err", err)
		return nil, err
	}
	contracts := make([]*contract.Contract, 0, len(values))
	for _, b := range values {
		c, err := contract.FromBytes(b)
		if err != nil {
			return nil, err
		}
		c.SetReadOnly()
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// PutContract saves a contract to the database and releases its lock.
// If the contract is read-only it panics, as that is a bug in the code.
func (sp *StorageProvider) PutContract(ctx context.Context, c *contract.Contract) error {
	return putUnlock(ctx, sp, c)
}

// ReleaseContract releases the contract's lock without saving.
func (sp *StorageProvider) ReleaseContract(ctx context.Context, c *contract.Contract) error {
	c.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(c.StorageKey()))
}
