//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/session"
)

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a document, marking *bold* and _italic_ text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := session.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), markup(doc.Runs()))
			return err
		},
	}
}

func markup(runs []document.Run) string {
	var b strings.Builder
	for _, r := range runs {
		text := r.Text
		if r.Traits.Italic {
			text = "_" + text + "_"
		}
		if r.Traits.Bold {
			text = "*" + text + "*"
		}
		b.WriteString(text)
	}
	if s := b.String(); !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
