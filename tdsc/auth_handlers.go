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

package tdsc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// authLoginHandler handles POST /auth/login. Signature verification is
// delegated to the identity gateway in a full deployment, here we check the
// DID is a registered user and mint a token.
func (ah *apiHandlers) authLoginHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.LoginRequest](req)
	if err != nil {
		return validationError(ctx, "Invalid login request", err.Error())
	}
	user, err := ah.store.GetUser(ctx, msg.DID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return unauthorizedError(ctx, "Unknown DID", fmt.Sprintf("login for unregistered DID %s", msg.DID))
		}
		return err
	}
	token := uuid.New().String()
	if err := ah.store.PutToken(ctx, token, user.DID); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusOK, shared.TokenResponse{
		Token: token,
		User:  user.ToWire(),
	})
}

// authRegisterHandler handles POST /auth/register. It creates a user for a
// DID and logs it in straight away.
func (ah *apiHandlers) authRegisterHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	msg, err := shared.DecodeValid[shared.RegisterRequest](req)
	if err != nil {
		return validationError(ctx, "Invalid register request", err.Error())
	}
	if _, err := ah.store.GetUser(ctx, msg.DID); err == nil {
		return conflictError(ctx, "DID already registered", fmt.Sprintf("register for existing DID %s", msg.DID))
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return err
	}
	user := &identity.User{
		ID:       uuid.New(),
		DID:      msg.DID,
		Username: msg.Username,
		Email:    msg.Email,
	}
	if err := ah.store.PutUser(ctx, user); err != nil {
		return err
	}
	token := uuid.New().String()
	if err := ah.store.PutToken(ctx, token, user.DID); err != nil {
		return err
	}
	return shared.EncodeValid(w, req, http.StatusCreated, shared.TokenResponse{
		Token: token,
		User:  user.ToWire(),
	})
}

// authVerifyHandler handles GET /auth/verify, returning the user behind the
// bearer token. Mounted behind the auth middleware.
func (ah *apiHandlers) authVerifyHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	user := ExtractUser(ctx)
	if user == nil {
		return unauthorizedError(ctx, "Invalid or expired token", "verify without user on context")
	}
	return shared.EncodeValid(w, req, http.StatusOK, user.ToWire())
}

// authLogoutHandler handles POST /auth/logout, invalidating the bearer token.
func (ah *apiHandlers) authLogoutHandler(w http.ResponseWriter, req *http.Request) error {
	ctx := req.Context()
	token := extractToken(ctx)
	if token == "" {
		return unauthorizedError(ctx, "Invalid or expired token", "logout without token on context")
	}
	if err := ah.store.DelToken(ctx, token); err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
