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

// Package tdsc contains the HTTP API of the trusted data space connector.
package tdsc

import (
	"net/http"

	"github.com/trusted-dataspace/tdsc/tdsc/blockchain"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
)

// GetRoutes gets all the connector API routes. Everything except the login
// and register endpoints sits behind the bearer token middleware.
func GetRoutes(
	store persistence.StorageProvider,
	gateway identity.Gateway,
	deployer blockchain.Deployer,
) http.Handler {
	mux := http.NewServeMux()
	authed := http.NewServeMux()
	requireAuth := NewAuthMiddleware(store)

	handleFunc := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, handler)
	}
	authedFunc := func(pattern string, handler http.Handler) {
		authed.Handle(pattern, handler)
	}

	ah := apiHandlers{
		store:    store,
		gateway:  gateway,
		deployer: deployer,
	}

	setupAuthEndpoints(handleFunc, authedFunc, ah)
	setupIdentityEndpoints(authedFunc, ah)
	setupOfferingEndpoints(authedFunc, ah)
	setupRequestEndpoints(authedFunc, ah)
	setupContractEndpoints(authedFunc, ah)
	setupTemplateEndpoints(authedFunc, ah)

	authedFunc("GET /display/statuses", WrapHandlerWithError(ah.displayStatusesHandler))

	mux.Handle("/", requireAuth(authed))
	return mux
}

type routeFunc func(pattern string, handler http.Handler)

func setupAuthEndpoints(handleFunc, authedFunc routeFunc, ah apiHandlers) {
	handleFunc("POST /auth/login", WrapHandlerWithError(ah.authLoginHandler))
	handleFunc("POST /auth/register", WrapHandlerWithError(ah.authRegisterHandler))
	// Verify and logout need the token resolved, so they live behind the
	// middleware.
	authedFunc("GET /auth/verify", WrapHandlerWithError(ah.authVerifyHandler))
	authedFunc("POST /auth/logout", WrapHandlerWithError(ah.authLogoutHandler))
}

func setupIdentityEndpoints(authedFunc routeFunc, ah apiHandlers) {
	authedFunc("POST /identity/did/generate", WrapHandlerWithError(ah.generateDIDHandler))
	authedFunc("POST /identity/did/register", WrapHandlerWithError(ah.registerConnectorHandler))
	authedFunc("GET /identity/connectors", WrapHandlerWithError(ah.listConnectorsHandler))
	authedFunc("GET /identity/connectors/{id}", WrapHandlerWithError(ah.getConnectorHandler))
	authedFunc("GET /identity/data-spaces", WrapHandlerWithError(ah.listDataSpacesHandler))
}

func setupOfferingEndpoints(authedFunc routeFunc, ah apiHandlers) {
	authedFunc("POST /offerings", WrapHandlerWithError(ah.createOfferingHandler))
	authedFunc("GET /offerings", WrapHandlerWithError(ah.listOfferingsHandler))
	authedFunc("GET /offerings/{id}", WrapHandlerWithError(ah.getOfferingHandler))
}

func setupRequestEndpoints(authedFunc routeFunc, ah apiHandlers) {
	authedFunc("POST /data-requests", WrapHandlerWithError(ah.createRequestHandler))
	authedFunc("GET /data-requests", WrapHandlerWithError(ah.listRequestsHandler))
	authedFunc("GET /data-requests/{id}", WrapHandlerWithError(ah.getRequestHandler))
	authedFunc("PUT /data-requests/{id}/approve", WrapHandlerWithError(ah.approveRequestHandler))
	authedFunc("PUT /data-requests/{id}/reject", WrapHandlerWithError(ah.rejectRequestHandler))
}

func setupContractEndpoints(authedFunc routeFunc, ah apiHandlers) {
	authedFunc("POST /contracts", WrapHandlerWithError(ah.createContractHandler))
	authedFunc("GET /contracts", WrapHandlerWithError(ah.listContractsHandler))
	authedFunc("GET /contracts/{id}", WrapHandlerWithError(ah.getContractHandler))
	authedFunc("PUT /contracts/{id}/confirm", WrapHandlerWithError(ah.confirmContractHandler))
	authedFunc("POST /contracts/{id}/deploy", WrapHandlerWithError(ah.deployContractHandler))
	authedFunc("PUT /contracts/{id}/terminate", WrapHandlerWithError(ah.terminateContractHandler))
	authedFunc("PUT /contracts/{id}/violate", WrapHandlerWithError(ah.violateContractHandler))
}

func setupTemplateEndpoints(authedFunc routeFunc, ah apiHandlers) {
	authedFunc("POST /contract-templates", WrapHandlerWithError(ah.createTemplateHandler))
	authedFunc("GET /contract-templates", WrapHandlerWithError(ah.listTemplatesHandler))
	authedFunc("GET /contract-templates/{id}", WrapHandlerWithError(ah.getTemplateHandler))
	authedFunc("PUT /contract-templates/{id}/activate", WrapHandlerWithError(ah.activateTemplateHandler))
	authedFunc("PUT /contract-templates/{id}/deprecate", WrapHandlerWithError(ah.deprecateTemplateHandler))
}
