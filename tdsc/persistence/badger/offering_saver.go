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
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
)

var offeringPrefix = []byte("offering-")

// GetOffering gets an offering by ID. Offerings are immutable so no locking
// is involved.
func (sp *StorageProvider) GetOffering(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	b, err := get(sp.db, offering.GenerateStorageKey(id))
	if err != nil {
		logging.Extract(ctx).Debug("could not get offering", "offeringID", id.String(), "err", err)
		return nil, err
	}
	return offering.FromBytes(b)
}

// ListOfferings returns all offerings.
func (sp *StorageProvider) ListOfferings(ctx context.Context) ([]*offering.Offering, error) {
	values, err := getAll(sp.db, offeringPrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list offerings", "err", err)
		return nil, err
	}
	offerings := make([]*offering.Offering, 0, len(values))
	for _, b := range values {
		o, err := offering.FromBytes(b)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, nil
}

// PutOffering stores an offering, erroring if the ID already exists.
func (sp *StorageProvider) PutOffering(ctx context.Context, o *offering.Offering) error {
	b, err := o.ToBytes()
	if err != nil {
		return err
	}
	return putOnce(sp.db, o.StorageKey(), b)
}
