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

package tdsc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trusted-dataspace/tdsc/tdsc"
	"github.com/trusted-dataspace/tdsc/tdsc/blockchain"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/offering"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence/badger"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
	"github.com/trusted-dataspace/tdsc/tdsc/template"
)

const testDataSpaceID = "ds-test"

var (
	providerConnectorID = uuid.MustParse("42e3656b-751c-40e1-a59c-3a07ec047c01")
	consumerConnectorID = uuid.MustParse("435b1eb7-824a-4a88-8dd3-9034b65db45c")
	offeringID          = uuid.MustParse("271d90b7-80ed-4f02-856d-5a881efba4ec")

	staticDID = shared.GenerateDIDResponse{
		DID: "did:web:fresh.example.com",
	}
)

type stubGateway struct {
	resp *shared.GenerateDIDResponse
	err  error
}

func (g *stubGateway) GenerateDID(ctx context.Context) (*shared.GenerateDIDResponse, error) {
	return g.resp, g.err
}

type environment struct {
	server  *httptest.Server
	store   *badger.StorageProvider
	gateway *stubGateway
	token   string
}

func setupEnvironment(t *testing.T) (context.Context, context.CancelFunc, *environment) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	slog.SetDefault(logger)

	store, err := badger.New(ctx, true, "")
	assert.Nil(t, err)
	gateway := &stubGateway{resp: &staticDID}
	deployer := &blockchain.SimulatedDeployer{Network: "testnet"}

	ts := httptest.NewServer(tdsc.GetRoutes(store, gateway, deployer))
	t.Cleanup(ts.Close)

	env := &environment{
		server:  ts,
		store:   store,
		gateway: gateway,
	}
	env.token = register(ctx, t, env, "did:web:user.example.com")
	seedIdentity(ctx, t, store)
	return ctx, cancel, env
}

func seedIdentity(ctx context.Context, t *testing.T, store persistence.StorageProvider) {
	t.Helper()
	err := store.PutDataSpace(ctx, &identity.DataSpace{
		ID:   testDataSpaceID,
		Code: "TEST",
		Name: "Test Space",
	})
	assert.Nil(t, err)
	for id, did := range map[uuid.UUID]string{
		providerConnectorID: "did:web:provider.example.com",
		consumerConnectorID: "did:web:consumer.example.com",
	} {
		err := store.PutConnector(ctx, &identity.Connector{
			ID:          id,
			DID:         did,
			DisplayName: did,
			Status:      "registered",
			DataSpaceID: testDataSpaceID,
			CreatedAt:   time.Now(),
		})
		assert.Nil(t, err)
	}
	err = store.PutOffering(ctx, &offering.Offering{
		ID:                     offeringID,
		ConnectorID:            providerConnectorID,
		Title:                  "sensor feed",
		DataType:               offering.TypeRESTful,
		Status:                 offering.StatusActive,
		RegistrationStatus:     offering.RegistrationRegistered,
		HostingStatus:          offering.HostingHosted,
		CrossBorderAuditStatus: offering.AuditNotRequired,
		CreatedAt:              time.Now(),
	})
	assert.Nil(t, err)
}

func register(ctx context.Context, t *testing.T, env *environment, did string) string {
	t.Helper()
	resp := doRequest(ctx, t, env, http.MethodPost, "/auth/register", encode(t, shared.RegisterRequest{
		DID:       did,
		Signature: "sig",
	}), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	tr := decode[shared.TokenResponse](t, resp.Body)
	assert.NotEmpty(t, tr.Token)
	return tr.Token
}

func doRequest(
	ctx context.Context, t *testing.T, env *environment,
	method, path string, body io.Reader, token string,
) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, method, env.server.URL+path, body)
	assert.Nil(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.Nil(t, err)
	return resp
}

func fetchAndDecode[T any](
	ctx context.Context, t *testing.T, env *environment,
	method, path string, body io.Reader, wantStatus int,
) T {
	t.Helper()
	resp := doRequest(ctx, t, env, method, path, body, env.token)
	defer resp.Body.Close()
	assert.Equal(t, wantStatus, resp.StatusCode)
	return decode[T](t, resp.Body)
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var thing T
	err := json.NewDecoder(body).Decode(&thing)
	assert.Nil(t, err)
	return thing
}

func encode[T any](t *testing.T, thing T) io.Reader {
	t.Helper()
	b := &bytes.Buffer{}
	err := json.NewEncoder(b).Encode(thing)
	assert.Nil(t, err)
	return b
}

func createRequest(
	ctx context.Context, t *testing.T, store persistence.StorageProvider, state request.State,
) *request.Request {
	t.Helper()
	req := request.New(ctx, uuid.New(), offeringID, providerConnectorID, consumerConnectorID,
		"model training", request.AccessModeAPI)
	if state != request.States.PENDING {
		assert.Nil(t, req.SetState(state))
	}
	assert.Nil(t, store.PutRequest(ctx, req))
	return req
}

func createTemplate(
	ctx context.Context, t *testing.T, store persistence.StorageProvider, state template.State,
) *template.Template {
	t.Helper()
	tmpl, err := template.New(ctx, uuid.New(), providerConnectorID,
		"30 day access", "", template.SinglePolicy,
		[]template.PolicyTemplate{{
			ID:   "pol-1",
			Name: "access window",
			Rules: []template.PolicyRule{
				{ID: "rule-1", Type: "access_period", Name: "window", Value: "30", Unit: "days", Active: true},
			},
		}})
	assert.Nil(t, err)
	if state != template.States.DRAFT {
		assert.Nil(t, tmpl.SetState(state))
	}
	assert.Nil(t, store.PutTemplate(ctx, tmpl))
	return tmpl
}

func TestAuthFlow(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	// no token at all
	resp := doRequest(ctx, t, env, http.MethodGet, "/data-requests", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// garbage token
	resp = doRequest(ctx, t, env, http.MethodGet, "/data-requests", nil, "not-a-token")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	user := fetchAndDecode[shared.User](ctx, t, env, http.MethodGet, "/auth/verify", nil, http.StatusOK)
	assert.Equal(t, "did:web:user.example.com", user.DID)

	// login mints a second token
	login := fetchAndDecode[shared.TokenResponse](ctx, t, env, http.MethodPost, "/auth/login",
		encode(t, shared.LoginRequest{DID: "did:web:user.example.com", Signature: "sig"}), http.StatusOK)
	assert.NotEmpty(t, login.Token)
	assert.NotEqual(t, env.token, login.Token)

	// logout invalidates the original token
	resp = doRequest(ctx, t, env, http.MethodPost, "/auth/logout", nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doRequest(ctx, t, env, http.MethodGet, "/auth/verify", nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownDID(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	resp := doRequest(ctx, t, env, http.MethodPost, "/auth/login",
		encode(t, shared.LoginRequest{DID: "did:web:stranger.example.com", Signature: "sig"}), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	detail := decode[shared.DetailError](t, resp.Body)
	assert.Equal(t, "Unknown DID", detail.Detail)
}

func TestGenerateDID(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	got := fetchAndDecode[shared.GenerateDIDResponse](ctx, t, env,
		http.MethodPost, "/identity/did/generate", nil, http.StatusOK)
	assert.Equal(t, staticDID.DID, got.DID)

	env.gateway.resp = nil
	env.gateway.err = fmt.Errorf("gateway down")
	resp := doRequest(ctx, t, env, http.MethodPost, "/identity/did/generate", nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRegisterConnector(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	msg := shared.RegisterConnectorMessage{
		DID:         "did:web:newcomer.example.com",
		DisplayName: "Newcomer",
		DataSpaceID: testDataSpaceID,
	}
	conn := fetchAndDecode[identity.ConnectorModel](ctx, t, env,
		http.MethodPost, "/identity/did/register", encode(t, msg), http.StatusCreated)
	assert.Equal(t, msg.DID, conn.DID)
	assert.Equal(t, "registered", conn.Status)

	// connector DIDs are unique
	resp := doRequest(ctx, t, env, http.MethodPost, "/identity/did/register", encode(t, msg), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// unknown data space
	msg.DID = "did:web:other.example.com"
	msg.DataSpaceID = "ds-nope"
	resp = doRequest(ctx, t, env, http.MethodPost, "/identity/did/register", encode(t, msg), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListConnectorsFilter(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	all := fetchAndDecode[[]identity.ConnectorModel](ctx, t, env,
		http.MethodGet, "/identity/connectors", nil, http.StatusOK)
	assert.Len(t, all, 2)

	none := fetchAndDecode[[]identity.ConnectorModel](ctx, t, env,
		http.MethodGet, "/identity/connectors?data_space_id=ds-nope", nil, http.StatusOK)
	assert.Empty(t, none)
}

func TestCreateDataRequest(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	msg := shared.CreateDataRequestMessage{
		DataOfferingID:      offeringID.String(),
		ConsumerConnectorID: consumerConnectorID.String(),
		Purpose:             "analytics",
		AccessMode:          "download",
	}
	created := fetchAndDecode[request.Model](ctx, t, env,
		http.MethodPost, "/data-requests", encode(t, msg), http.StatusCreated)
	assert.Equal(t, request.States.PENDING.String(), created.Status)
	assert.Equal(t, providerConnectorID.String(), created.ProviderConnectorID)
	assert.Equal(t, consumerConnectorID.String(), created.ConsumerConnectorID)

	stored, err := env.store.GetRequestR(ctx, uuid.MustParse(created.ID))
	assert.Nil(t, err)
	assert.Equal(t, request.States.PENDING, stored.GetState())

	// unknown offering
	msg.DataOfferingID = uuid.New().String()
	resp := doRequest(ctx, t, env, http.MethodPost, "/data-requests", encode(t, msg), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// provider can't request its own offering
	msg.DataOfferingID = offeringID.String()
	msg.ConsumerConnectorID = providerConnectorID.String()
	resp = doRequest(ctx, t, env, http.MethodPost, "/data-requests", encode(t, msg), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApproveRequest(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.PENDING)

	path := fmt.Sprintf("/data-requests/%s/approve", req.GetID())
	approved := fetchAndDecode[request.Model](ctx, t, env, http.MethodPut, path, nil, http.StatusOK)
	assert.Equal(t, request.States.APPROVED.String(), approved.Status)
	assert.NotEmpty(t, approved.UpdatedAt)

	// a second decision conflicts instead of flip-flopping
	resp := doRequest(ctx, t, env, http.MethodPut, path, nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = doRequest(ctx, t, env,
		http.MethodPut, fmt.Sprintf("/data-requests/%s/reject", req.GetID()), nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRejectRequest(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.PENDING)

	rejected := fetchAndDecode[request.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/data-requests/%s/reject", req.GetID()), nil, http.StatusOK)
	assert.Equal(t, request.States.REJECTED.String(), rejected.Status)
}

func TestContractLifecycle(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.APPROVED)
	tmpl := createTemplate(ctx, t, env.store, template.States.ACTIVE)

	created := fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPost, "/contracts", encode(t, shared.CreateContractMessage{
			Name:                "sensor feed access",
			ProviderConnectorID: providerConnectorID.String(),
			ConsumerConnectorID: consumerConnectorID.String(),
			ContractTemplateID:  tmpl.GetID().String(),
			DataOfferingID:      offeringID.String(),
			DataRequestID:       req.GetID().String(),
		}), http.StatusCreated)
	assert.Equal(t, contract.States.PENDINGCONSUMER.String(), created.Status)
	contractID := uuid.MustParse(created.ID)

	// template usage got bumped
	storedTmpl, err := env.store.GetTemplateR(ctx, tmpl.GetID())
	assert.Nil(t, err)
	assert.Equal(t, 1, storedTmpl.GetUsageCount())

	// consumer confirms
	confirmed := fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contracts/%s/confirm", contractID),
		encode(t, shared.ConfirmContractMessage{Action: "confirm"}), http.StatusOK)
	assert.Equal(t, contract.States.ACTIVE.String(), confirmed.Status)

	// anchor on chain
	receipt := fetchAndDecode[shared.DeployReceipt](ctx, t, env,
		http.MethodPost, fmt.Sprintf("/contracts/%s/deploy", contractID), nil, http.StatusOK)
	assert.NotEmpty(t, receipt.ContractAddress)
	assert.Equal(t, "testnet", receipt.BlockchainNetwork)

	// deployment is once only
	resp := doRequest(ctx, t, env,
		http.MethodPost, fmt.Sprintf("/contracts/%s/deploy", contractID), nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// terminate finishes contract and request
	terminated := fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contracts/%s/terminate", contractID), nil, http.StatusOK)
	assert.Equal(t, contract.States.TERMINATED.String(), terminated.Status)

	storedReq, err := env.store.GetRequestR(ctx, req.GetID())
	assert.Nil(t, err)
	assert.Equal(t, request.States.COMPLETED, storedReq.GetState())
}

func TestContractConsumerReject(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.APPROVED)
	tmpl := createTemplate(ctx, t, env.store, template.States.ACTIVE)

	created := fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPost, "/contracts", encode(t, shared.CreateContractMessage{
			Name:                "short lived",
			ProviderConnectorID: providerConnectorID.String(),
			ContractTemplateID:  tmpl.GetID().String(),
			DataRequestID:       req.GetID().String(),
		}), http.StatusCreated)
	// consumer and offering resolved from the request
	assert.Equal(t, consumerConnectorID.String(), created.ConsumerConnectorID)
	assert.Equal(t, offeringID.String(), created.DataOfferingID)

	rejected := fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contracts/%s/confirm", created.ID),
		encode(t, shared.ConfirmContractMessage{Action: "reject"}), http.StatusOK)
	assert.Equal(t, contract.States.REJECTED.String(), rejected.Status)

	// a rejection is final
	resp := doRequest(ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contracts/%s/confirm", created.ID),
		encode(t, shared.ConfirmContractMessage{Action: "confirm"}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestContractCreatePreconditions(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	tmpl := createTemplate(ctx, t, env.store, template.States.ACTIVE)

	// data request must be approved
	pending := createRequest(ctx, t, env.store, request.States.PENDING)
	resp := doRequest(ctx, t, env, http.MethodPost, "/contracts",
		encode(t, shared.CreateContractMessage{
			Name:                "too soon",
			ProviderConnectorID: providerConnectorID.String(),
			ContractTemplateID:  tmpl.GetID().String(),
			DataRequestID:       pending.GetID().String(),
		}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// template must be active
	draft := createTemplate(ctx, t, env.store, template.States.DRAFT)
	approved := createRequest(ctx, t, env.store, request.States.APPROVED)
	resp = doRequest(ctx, t, env, http.MethodPost, "/contracts",
		encode(t, shared.CreateContractMessage{
			Name:                "bad template",
			ProviderConnectorID: providerConnectorID.String(),
			ContractTemplateID:  draft.GetID().String(),
			DataRequestID:       approved.GetID().String(),
		}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// one live contract per data request
	msg := shared.CreateContractMessage{
		Name:                "first",
		ProviderConnectorID: providerConnectorID.String(),
		ContractTemplateID:  tmpl.GetID().String(),
		DataRequestID:       approved.GetID().String(),
	}
	_ = fetchAndDecode[contract.Model](ctx, t, env,
		http.MethodPost, "/contracts", encode(t, msg), http.StatusCreated)
	msg.Name = "second"
	resp = doRequest(ctx, t, env, http.MethodPost, "/contracts", encode(t, msg), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// unknown data request
	resp = doRequest(ctx, t, env, http.MethodPost, "/contracts",
		encode(t, shared.CreateContractMessage{
			Name:                "dangling",
			ProviderConnectorID: providerConnectorID.String(),
			ContractTemplateID:  tmpl.GetID().String(),
			DataRequestID:       uuid.New().String(),
		}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConcurrentContractCreation(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.APPROVED)
	templates := []*template.Template{
		createTemplate(ctx, t, env.store, template.States.ACTIVE),
		createTemplate(ctx, t, env.store, template.States.ACTIVE),
	}

	// Two providers race to back the same approved request. The request's
	// entity lock serialises them, so exactly one contract gets created.
	codes := make(chan int, len(templates))
	for _, tmpl := range templates {
		go func(templateID uuid.UUID) {
			resp := doRequest(ctx, t, env, http.MethodPost, "/contracts",
				encode(t, shared.CreateContractMessage{
					Name:                "raced",
					ProviderConnectorID: providerConnectorID.String(),
					ContractTemplateID:  templateID.String(),
					DataRequestID:       req.GetID().String(),
				}), env.token)
			resp.Body.Close()
			codes <- resp.StatusCode
		}(tmpl.GetID())
	}
	got := []int{<-codes, <-codes}
	slices.Sort(got)
	assert.Equal(t, []int{http.StatusCreated, http.StatusConflict}, got)

	contracts, err := env.store.ListContracts(ctx)
	assert.Nil(t, err)
	assert.Len(t, contracts, 1)
}

func TestContractTemplateOwnership(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	req := createRequest(ctx, t, env.store, request.States.APPROVED)
	theirs, err := template.New(ctx, uuid.New(), consumerConnectorID,
		"someone else's terms", "", template.MultiPolicy, nil)
	assert.Nil(t, err)
	assert.Nil(t, theirs.SetState(template.States.ACTIVE))
	assert.Nil(t, env.store.PutTemplate(ctx, theirs))

	// the provider can only draft contracts on its own templates
	resp := doRequest(ctx, t, env, http.MethodPost, "/contracts",
		encode(t, shared.CreateContractMessage{
			Name:                "borrowed template",
			ProviderConnectorID: providerConnectorID.String(),
			ContractTemplateID:  theirs.GetID().String(),
			DataRequestID:       req.GetID().String(),
		}), env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListFilters(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()
	createRequest(ctx, t, env.store, request.States.PENDING)
	createRequest(ctx, t, env.store, request.States.APPROVED)

	all := fetchAndDecode[[]request.Model](ctx, t, env,
		http.MethodGet, "/data-requests", nil, http.StatusOK)
	assert.Len(t, all, 2)

	pending := fetchAndDecode[[]request.Model](ctx, t, env,
		http.MethodGet, "/data-requests?status=pending", nil, http.StatusOK)
	assert.Len(t, pending, 1)

	asProvider := fetchAndDecode[[]request.Model](ctx, t, env,
		http.MethodGet, fmt.Sprintf("/data-requests?connector_id=%s&role=provider", providerConnectorID),
		nil, http.StatusOK)
	assert.Len(t, asProvider, 2)

	asConsumer := fetchAndDecode[[]request.Model](ctx, t, env,
		http.MethodGet, fmt.Sprintf("/data-requests?connector_id=%s&role=consumer", providerConnectorID),
		nil, http.StatusOK)
	assert.Empty(t, asConsumer)

	// role without connector_id is an error
	resp := doRequest(ctx, t, env, http.MethodGet, "/data-requests?role=provider", nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplateEndpoints(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	created := fetchAndDecode[template.Model](ctx, t, env,
		http.MethodPost, "/contract-templates", encode(t, map[string]any{
			"connector_id":  providerConnectorID.String(),
			"name":          "30 day access",
			"contract_type": "single_policy",
			"policy_templates": []map[string]any{{
				"id":   "pol-1",
				"name": "access window",
				"rules": []map[string]any{{
					"id": "rule-1", "type": "access_period", "name": "window",
					"value": "30", "unit": "days", "is_active": true,
				}},
			}},
		}), http.StatusCreated)
	assert.Equal(t, template.States.DRAFT.String(), created.Status)

	activated := fetchAndDecode[template.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contract-templates/%s/activate", created.ID), nil, http.StatusOK)
	assert.Equal(t, template.States.ACTIVE.String(), activated.Status)

	deprecated := fetchAndDecode[template.Model](ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contract-templates/%s/deprecate", created.ID), nil, http.StatusOK)
	assert.Equal(t, template.States.DEPRECATED.String(), deprecated.Status)

	// deprecated is terminal
	resp := doRequest(ctx, t, env,
		http.MethodPut, fmt.Sprintf("/contract-templates/%s/activate", created.ID), nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateOffering(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	created := fetchAndDecode[offering.Model](ctx, t, env,
		http.MethodPost, "/offerings", encode(t, shared.CreateOfferingMessage{
			ConnectorID: providerConnectorID.String(),
			Title:       "warehouse exports",
			DataType:    "s3",
		}), http.StatusCreated)
	assert.Equal(t, string(offering.StatusActive), created.Status)
	assert.Equal(t, string(offering.RegistrationUnregistered), created.RegistrationStatus)

	listed := fetchAndDecode[[]offering.Model](ctx, t, env,
		http.MethodGet, "/offerings", nil, http.StatusOK)
	assert.Len(t, listed, 2)

	filtered := fetchAndDecode[[]offering.Model](ctx, t, env,
		http.MethodGet, fmt.Sprintf("/offerings?connector_id=%s", providerConnectorID), nil, http.StatusOK)
	assert.Len(t, filtered, 2)

	// offerings have no consumer side, role does not apply
	resp := doRequest(ctx, t, env, http.MethodGet,
		fmt.Sprintf("/offerings?connector_id=%s&role=provider", providerConnectorID), nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDisplayStatuses(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	catalog := fetchAndDecode[map[string]map[string]struct {
		Icon  string `json:"icon"`
		Label string `json:"label"`
	}](ctx, t, env, http.MethodGet, "/display/statuses", nil, http.StatusOK)
	assert.Contains(t, catalog, "contract_status")
	assert.Contains(t, catalog, "data_request_status")
	assert.Equal(t, "Active", catalog["contract_status"]["active"].Label)
}

func TestNotFoundAndBadIDs(t *testing.T) {
	ctx, cancel, env := setupEnvironment(t)
	defer cancel()

	resp := doRequest(ctx, t, env,
		http.MethodGet, fmt.Sprintf("/contracts/%s", uuid.New()), nil, env.token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	detail := decode[shared.DetailError](t, resp.Body)
	assert.Equal(t, "Contract not found", detail.Detail)

	resp = doRequest(ctx, t, env, http.MethodGet, "/data-requests/not-a-uuid", nil, env.token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
