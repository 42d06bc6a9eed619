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
	"context"
	"net/http"
	"strings"

	"github.com/trusted-dataspace/tdsc/logging"
	"github.com/trusted-dataspace/tdsc/tdsc/identity"
	"github.com/trusted-dataspace/tdsc/tdsc/persistence"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

type contextKeyType string

const (
	userKey  contextKeyType = "user"
	tokenKey contextKeyType = "token"
)

// ExtractUser returns the authenticated user from the context, nil if the
// request was anonymous.
func ExtractUser(ctx context.Context) *identity.User {
	user, ok := ctx.Value(userKey).(*identity.User)
	if !ok {
		return nil
	}
	return user
}

func extractToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// NewAuthMiddleware resolves the bearer token into a user on the request
// context. Requests without a valid token are rejected, the auth endpoints
// themselves are mounted outside this middleware.
func NewAuthMiddleware(store persistence.StorageProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.Extract(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				rejectUnauthenticated(w, r, "Missing bearer token")
				return
			}
			did, err := store.GetToken(ctx, token)
			if err != nil {
				logger.Debug("token not found", "err", err)
				rejectUnauthenticated(w, r, "Invalid or expired token")
				return
			}
			user, err := store.GetUser(ctx, did)
			if err != nil {
				logger.Error("token resolved to missing user", "did", did, "err", err)
				rejectUnauthenticated(w, r, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			ctx, _ = logging.InjectLabels(ctx, "user_did", user.DID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request, detail string) {
	if err := shared.EncodeValid(w, r, http.StatusUnauthorized, shared.DetailError{
		Detail: detail,
	}); err != nil {
		logging.Extract(r.Context()).Error("Error while encoding auth error", "err", err)
	}
}
