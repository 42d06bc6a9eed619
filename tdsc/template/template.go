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

// Package template contains the contract template entity. A template is owned
// by a connector and bundles the policy templates a contract is built from.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/logging"
)

// State is the state of a contract template.
type State string

func (s State) String() string { return string(s) }

// States contains all valid template states.
var States = struct {
	DRAFT      State
	ACTIVE     State
	DEPRECATED State
}{
	DRAFT:      "draft",
	ACTIVE:     "active",
	DEPRECATED: "deprecated",
}

// ParseState parses a state string into a State.
func ParseState(s string) (State, error) {
	state := State(s)
	switch state {
	case States.DRAFT, States.ACTIVE, States.DEPRECATED:
		return state, nil
	default:
		return state, fmt.Errorf("invalid template state: %s", s)
	}
}

var validTransitions = map[State][]State{
	States.DRAFT:      {States.ACTIVE},
	States.ACTIVE:     {States.DEPRECATED},
	States.DEPRECATED: {},
}

// ContractType says how many policies a contract built from this template
// carries.
type ContractType string

// Contract types.
const (
	SinglePolicy ContractType = "single_policy"
	MultiPolicy  ContractType = "multi_policy"
)

// ParseContractType parses a contract type string.
func ParseContractType(s string) (ContractType, error) {
	ct := ContractType(s)
	switch ct {
	case SinglePolicy, MultiPolicy:
		return ct, nil
	default:
		return ct, fmt.Errorf("invalid contract type: %s", s)
	}
}

// RuleType is the type of an access policy rule.
type RuleType string

// Rule types.
const (
	RuleAccessPeriod        RuleType = "access_period"
	RuleAccessCount         RuleType = "access_count"
	RuleIdentityRestriction RuleType = "identity_restriction"
	RuleEncryption          RuleType = "encryption"
	RuleIPRestriction       RuleType = "ip_restriction"
	RuleTransferLimit       RuleType = "transfer_limit"
	RuleQPSLimit            RuleType = "qps_limit"
)

var knownRuleTypes = []RuleType{
	RuleAccessPeriod, RuleAccessCount, RuleIdentityRestriction, RuleEncryption,
	RuleIPRestriction, RuleTransferLimit, RuleQPSLimit,
}

// PolicyRule is a single typed rule inside a policy template.
type PolicyRule struct {
	ID     string `json:"id" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=access_period access_count identity_restriction encryption ip_restriction transfer_limit qps_limit"`
	Name   string `json:"name" validate:"required"`
	Value  string `json:"value" validate:"required"`
	Unit   string `json:"unit,omitempty"`
	Active bool   `json:"is_active"`
}

// PolicyTemplate is an ordered bundle of rules inside a contract template.
type PolicyTemplate struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description,omitempty"`
	Rules       []PolicyRule `json:"rules" validate:"dive"`
}

// Template represents a reusable contract template.
type Template struct {
	id           uuid.UUID
	connectorID  uuid.UUID
	name         string
	description  string
	contractType ContractType
	state        State
	usageCount   int
	policies     []PolicyTemplate
	createdAt    time.Time
	updatedAt    time.Time

	ro       bool
	modified bool
}

// New creates a new template in the draft state. A single_policy template must
// carry exactly one policy template.
func New(
	ctx context.Context,
	id, connectorID uuid.UUID,
	name, description string,
	contractType ContractType,
	policies []PolicyTemplate,
) (*Template, error) {
	if contractType == SinglePolicy && len(policies) != 1 {
		return nil, fmt.Errorf("single_policy template needs exactly one policy, got %d", len(policies))
	}
	for _, p := range policies {
		for _, rule := range p.Rules {
			if !slices.Contains(knownRuleTypes, RuleType(rule.Type)) {
				return nil, fmt.Errorf("unknown rule type: %s", rule.Type)
			}
		}
	}
	t := &Template{
		id:           id,
		connectorID:  connectorID,
		name:         name,
		description:  description,
		contractType: contractType,
		state:        States.DRAFT,
		policies:     policies,
		createdAt:    time.Now().UTC(),
		modified:     true,
	}
	logging.Extract(ctx).Info("creating new contract template",
		"templateID", id.String(),
		"connectorID", connectorID.String(),
		"contractType", string(contractType),
	)
	return t, nil
}

// GenerateStorageKey generates the storage key for a template.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("template-" + id.String())
}

// Template getters.
func (t *Template) GetID() uuid.UUID                 { return t.id }
func (t *Template) GetConnectorID() uuid.UUID        { return t.connectorID }
func (t *Template) GetName() string                  { return t.name }
func (t *Template) GetDescription() string           { return t.description }
func (t *Template) GetContractType() ContractType    { return t.contractType }
func (t *Template) GetState() State                  { return t.state }
func (t *Template) GetUsageCount() int               { return t.usageCount }
func (t *Template) GetPolicies() []PolicyTemplate    { return t.policies }
func (t *Template) GetCreatedAt() time.Time          { return t.createdAt }

// Usable reports whether the template may back a new contract. Only active
// templates are offered for contract creation.
func (t *Template) Usable() bool { return t.state == States.ACTIVE }

// SetState transitions the template along draft -> active -> deprecated.
func (t *Template) SetState(state State) error {
	t.panicRO()
	if !slices.Contains(validTransitions[t.state], state) {
		return fmt.Errorf("can't transition from %s to %s", t.state, state)
	}
	t.state = state
	t.updatedAt = time.Now().UTC()
	t.modify()
	return nil
}

// IncrementUsage bumps the usage counter, done on every contract creation
// that references this template.
func (t *Template) IncrementUsage() {
	t.panicRO()
	t.usageCount++
	t.updatedAt = time.Now().UTC()
	t.modify()
}

// Properties that storage decisions are based on.
func (t *Template) ReadOnly() bool { return t.ro }
func (t *Template) Modified() bool { return t.modified }
func (t *Template) StorageKey() []byte {
	return GenerateStorageKey(t.id)
}

// SetReadOnly marks the template read-only, saving it after this panics.
func (t *Template) SetReadOnly() { t.ro = true }

func (t *Template) panicRO() {
	if t.ro {
		panic("Trying to write to a read-only template, this is certainly a bug.")
	}
}

func (t *Template) modify() {
	t.modified = true
}

// Model is the wire/storage representation of a template.
type Model struct {
	ID              string           `json:"id" validate:"required,uuid"`
	ConnectorID     string           `json:"connector_id" validate:"required,uuid"`
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description,omitempty"`
	ContractType    string           `json:"contract_type" validate:"required,oneof=single_policy multi_policy"`
	Status          string           `json:"status" validate:"required"`
	UsageCount      int              `json:"usage_count"`
	PolicyTemplates []PolicyTemplate `json:"policy_templates" validate:"dive"`
	CreatedAt       string           `json:"created_at" validate:"required"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

// ToModel converts the template to its wire model.
func (t *Template) ToModel() Model {
	updated := ""
	if !t.updatedAt.IsZero() {
		updated = t.updatedAt.Format(time.RFC3339)
	}
	return Model{
		ID:              t.id.String(),
		ConnectorID:     t.connectorID.String(),
		Name:            t.name,
		Description:     t.description,
		ContractType:    string(t.contractType),
		Status:          t.state.String(),
		UsageCount:      t.usageCount,
		PolicyTemplates: t.policies,
		CreatedAt:       t.createdAt.Format(time.RFC3339),
		UpdatedAt:       updated,
	}
}

// FromModel converts a wire model back into a template.
func FromModel(m Model) (*Template, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	connectorID, err := uuid.Parse(m.ConnectorID)
	if err != nil {
		return nil, err
	}
	state, err := ParseState(m.Status)
	if err != nil {
		return nil, err
	}
	contractType, err := ParseContractType(m.ContractType)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	var updatedAt time.Time
	if m.UpdatedAt != "" {
		updatedAt, err = time.Parse(time.RFC3339, m.UpdatedAt)
		if err != nil {
			return nil, err
		}
	}
	return &Template{
		id:           id,
		connectorID:  connectorID,
		name:         m.Name,
		description:  m.Description,
		contractType: contractType,
		state:        state,
		usageCount:   m.UsageCount,
		policies:     m.PolicyTemplates,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ToBytes serialises the template for storage.
func (t *Template) ToBytes() ([]byte, error) {
	return json.Marshal(t.ToModel())
}

// FromBytes deserialises a stored template.
func FromBytes(b []byte) (*Template, error) {
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return FromModel(m)
}
