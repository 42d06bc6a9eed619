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
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
)

// tokenTTL is the session lifetime, tokens vanish from the store when it
// lapses.
const tokenTTL = 24 * time.Hour

func tokenKey(token string) []byte {
	return []byte("token-" + token)
}

// GetToken retrieves the DID a bearer token belongs to.
func (sp *StorageProvider) GetToken(_ context.Context, token string) (string, error) {
	b, err := get(sp.db, tokenKey(token))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DelToken deletes a bearer token, logging a session out.
func (sp *StorageProvider) DelToken(_ context.Context, token string) error {
	return sp.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(tokenKey(token))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return persistence.ErrNotFound
		}
		return err
	})
}

// PutToken stores a token/DID combination with the session TTL.
func (sp *StorageProvider) PutToken(_ context.Context, token, did string) error {
	return sp.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(tokenKey(token), []byte(did)).WithTTL(tokenTTL)
		return txn.SetEntry(entry)
	})
}
