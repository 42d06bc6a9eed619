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

package template_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

func singlePolicy() []template.PolicyTemplate {
	return []template.PolicyTemplate{
		{
			ID:   "pol-1",
			Name: "access window",
			Rules: []template.PolicyRule{
				{ID: "rule-1", Type: "access_period", Name: "window", Value: "30", Unit: "days", Active: true},
			},
		},
	}
}

func newTemplate(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := template.New(
		context.Background(),
		uuid.New(), uuid.New(),
		"30 day access", "standard 30 day window",
		template.SinglePolicy,
		singlePolicy(),
	)
	assert.Nil(t, err)
	return tmpl
}

func TestNewTemplateStartsDraft(t *testing.T) {
	t.Parallel()
	tmpl := newTemplate(t)
	assert.Equal(t, template.States.DRAFT, tmpl.GetState())
	assert.False(t, tmpl.Usable())
	assert.Equal(t, 0, tmpl.GetUsageCount())
}

func TestSinglePolicyNeedsOnePolicy(t *testing.T) {
	t.Parallel()
	_, err := template.New(
		context.Background(),
		uuid.New(), uuid.New(),
		"bad", "",
		template.SinglePolicy,
		nil,
	)
	assert.NotNil(t, err)

	policies := append(singlePolicy(), singlePolicy()...)
	_, err = template.New(
		context.Background(),
		uuid.New(), uuid.New(),
		"bad", "",
		template.SinglePolicy,
		policies,
	)
	assert.NotNil(t, err)

	// multi_policy takes any number
	_, err = template.New(
		context.Background(),
		uuid.New(), uuid.New(),
		"good", "",
		template.MultiPolicy,
		policies,
	)
	assert.Nil(t, err)
}

func TestUnknownRuleTypeRejected(t *testing.T) {
	t.Parallel()
	policies := singlePolicy()
	policies[0].Rules[0].Type = "mind-reading"
	_, err := template.New(
		context.Background(),
		uuid.New(), uuid.New(),
		"bad", "",
		template.SinglePolicy,
		policies,
	)
	assert.NotNil(t, err)
}

func TestTemplateTransitions(t *testing.T) {
	t.Parallel()
	tmpl := newTemplate(t)
	assert.Nil(t, tmpl.SetState(template.States.ACTIVE))
	assert.True(t, tmpl.Usable())
	assert.Nil(t, tmpl.SetState(template.States.DEPRECATED))
	assert.False(t, tmpl.Usable())

	// deprecated is terminal
	assert.NotNil(t, tmpl.SetState(template.States.ACTIVE))
	assert.NotNil(t, tmpl.SetState(template.States.DRAFT))
}

func TestTemplateDraftCannotDeprecate(t *testing.T) {
	t.Parallel()
	tmpl := newTemplate(t)
	assert.NotNil(t, tmpl.SetState(template.States.DEPRECATED))
}

func TestIncrementUsage(t *testing.T) {
	t.Parallel()
	tmpl := newTemplate(t)
	assert.Nil(t, tmpl.SetState(template.States.ACTIVE))
	tmpl.IncrementUsage()
	tmpl.IncrementUsage()
	assert.Equal(t, 2, tmpl.GetUsageCount())
}

func TestTemplateModelRoundTrip(t *testing.T) {
	t.Parallel()
	tmpl := newTemplate(t)
	assert.Nil(t, tmpl.SetState(template.States.ACTIVE))
	tmpl.IncrementUsage()

	b, err := tmpl.ToBytes()
	assert.Nil(t, err)
	restored, err := template.FromBytes(b)
	assert.Nil(t, err)

	assert.Equal(t, tmpl.GetID(), restored.GetID())
	assert.Equal(t, tmpl.GetConnectorID(), restored.GetConnectorID())
	assert.Equal(t, template.States.ACTIVE, restored.GetState())
	assert.Equal(t, 1, restored.GetUsageCount())
	assert.Equal(t, tmpl.GetPolicies(), restored.GetPolicies())
}
