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
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

var templatePrefix = []byte("template-")

// GetTemplateR gets a contract template and sets the read-only property.
func (sp *StorageProvider) GetTemplateR(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	key := template.GenerateStorageKey(id)
	_, logger := logging.InjectLabels(ctx, "templateID", id.String(), "key", string(key))
	b, err := get(sp.db, key)
	if err != nil {
		logger.Debug("could not get template", "err", err)
		return nil, err
	}
	t, err := template.FromBytes(b)
	if err != nil {
		return nil, err
	}

	t.SetReadOnly()
	return t, nil
}

// GetTemplateRW gets a contract template but does NOT set the read-only
// property, allowing changes to be saved. It holds the template's entity lock
// until the template is put back or released.
func (sp *StorageProvider) GetTemplateRW(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	key := template.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "template", "templateID", id.String())
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	t, err := template.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return t, nil
}

// ListTemplates returns read-only versions of all contract templates.
func (sp *StorageProvider) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	values, err := getAll(sp.db, templatePrefix)
	if err != nil {
		logging.Extract(ctx).Error("could not list templates", "err", err)
		return nil, err
	}
	templates := make([]*template.Template, 0, len(values))
	for _, b := range values {
		t, err := template.FromBytes(b)
		if err != nil {
			return nil, err
		}
		t.SetReadOnly()
		templates = append(templates, t)
	}
	return templates, nil
}

// PutTemplate saves a contract template to the database and releases its
// lock. If the template is read-only it panics, as that is a bug in the code.
func (sp *StorageProvider) PutTemplate(ctx context.Context, t *template.Template) error {
	return putUnlock(ctx, sp, t)
}

// ReleaseTemplate releases the template's lock without saving.
func (sp *StorageProvider) ReleaseTemplate(ctx context.Context, t *template.Template) error {
	t.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(t.StorageKey()))
}
