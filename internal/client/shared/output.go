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

package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/trusted-dataspace/tdsc/internal/ui"
	"github.com/trusted-dataspace/tdsc/tdsc/contract"
	"github.com/trusted-dataspace/tdsc/tdsc/request"
)

// PprintJSON pretty-prints o as syntax highlighted JSON, plain when colour is
// disabled.
func PprintJSON[T any](o T) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("could not marshal response: %w", err)
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, b, "", "  ")
	if err != nil {
		return fmt.Errorf("could not indent JSON: %w", err)
	}
	if viper.GetBool(NoColor) {
		ui.Print(buf.String())
		return nil
	}
	return quick.Highlight(os.Stdout, buf.String(), "json", "terminal256", "catppuccin-mocha")
}

// PrintContracts prints contracts as a table, or as JSON.
func PrintContracts(contracts []contract.Model, printJSON bool) error {
	if printJSON {
		return PprintJSON(contracts)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		bold.Sprint("ID"), bold.Sprint("NAME"), bold.Sprint("STATUS"),
		bold.Sprint("EXPIRES"), bold.Sprint("ADDRESS"))
	for _, c := range contracts {
		expires := c.ExpiresAt
		if expires == "" {
			expires = "-"
		}
		address := c.ContractAddress
		if address == "" {
			address = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, expires, address)
	}
	return w.Flush()
}

// PrintRequests prints data requests as a table, or as JSON.
func PrintRequests(requests []request.Model, printJSON bool) error {
	if printJSON {
		return PprintJSON(requests)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		bold.Sprint("ID"), bold.Sprint("OFFERING"), bold.Sprint("STATUS"),
		bold.Sprint("MODE"), bold.Sprint("PURPOSE"))
	for _, r := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.DataOfferingID, r.Status, r.AccessMode, r.Purpose)
	}
	return w.Flush()
}
