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
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

var requestPrefix = []byte("request-")

// GetRequestR gets a data request and sets the read-only property.
// It does not check any locks, as the database transaction already freezes
// the view.
func (sp *StorageProvider) GetRequestR(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	key := request.GenerateStorageKey(id)
	_, logger := logging.InjectLabels(ctx, "requestID", id.String(), "key", string(key))
	b, err := get(sp.db, key)
	if err != nil {
		logger.Debug("could not get data request", "err", err)
		return nil, err
	}
	req, err := request.FromBytes(b)
	if err != nil {
		return nil, err
	}

	req.SetReadOnly()
	return req, nil
}

// GetRequestRW gets a data request but does NOT set the read-only property,
// allowing changes to be saved. It holds the request's entity lock until the
// request is put back or released, making approve and reject single-writer.
func (sp *StorageProvider) GetRequestRW(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	key := request.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "request", "requestID", id.String())
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	req, err := request.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return req, nil
}

// ListRequests returns read-only versions of all data requests.
func (sp *StorageProvider) ListRequests(ctx context.Context) ([]*request.Request, error) {
	values, err := getAll(sp.db, requestPrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list data requests", "err", err)
		return nil, err
	}
	reqs := make([]*request.Request, 0, len(values))
	for _, b := range values {
		req, err := request.FromBytes(b)
		if err != nil {
			return nil, err
		}
		req.SetReadOnly()
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// PutRequest saves a data request to the database and releases its lock.
// If the request is read-only it panics, as that is a bug in the code.
func (sp *StorageProvider) PutRequest(ctx context.Context, req *request.Request) error {
	return putUnlock(ctx, sp, req)
}

// ReleaseRequest releases the request's lock without saving.
func (sp *StorageProvider) ReleaseRequest(ctx context.Context, req *request.Request) error {
	req.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(req.StorageKey()))
}
