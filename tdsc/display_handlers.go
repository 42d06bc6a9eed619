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
	"net/http"

	"github.com/trusted-dataspace/tdsc/tdsc/display"
	"github.com/trusted-dataspace/tdsc/tdsc/shared"
)

// displayStatusesHandler handles GET /display/statuses, serving the icon and
// label catalog clients render statuses with.
func (ah *apiHandlers) displayStatusesHandler(w http.ResponseWriter, req *http.Request) error {
	return shared.EncodeValid(w, req, http.StatusOK, display.Catalog())
}
