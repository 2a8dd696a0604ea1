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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timburks/rtfed/prefs"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show viewer preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, store, err := a.openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			p := m.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", prefs.KeyFontName, p.FontFamily)
			fmt.Fprintf(out, "%s: %g\n", prefs.KeyFontSize, p.FontSizePt)
			fmt.Fprintf(out, "%s: %g\n", prefs.KeyPadding, p.HorizontalPaddingPx)
			fmt.Fprintf(out, "%s: %s\n", prefs.KeyTextColor, p.TextColor.Hex())
			fmt.Fprintf(out, "%s: %s\n", prefs.KeyBackgroundColor, p.BackgroundColor.Hex())
			if last := m.LastFilePath(); last != "" {
				fmt.Fprintf(out, "%s: %s\n", prefs.KeyLastFilePath, last)
			}
			if token := m.FolderBookmark(); token != "" {
				dir, err := prefs.ResolveBookmark(token)
				if err != nil {
					fmt.Fprintf(out, "folder: (%v)\n", err)
				} else {
					fmt.Fprintf(out, "folder: %s\n", dir)
				}
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a viewer preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, store, err := a.openPrefs(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			return setPreference(m, args[0], args[1])
		},
	})
	return cmd
}

func setPreference(m *prefs.Manager, key, value string) error {
	switch key {
	case prefs.KeyFontName:
		return m.SetFontFamily(value)
	case prefs.KeyFontSize, prefs.KeyPadding:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == prefs.KeyFontSize {
			return m.SetFontSize(f)
		}
		return m.SetPadding(f)
	case prefs.KeyTextColor, prefs.KeyBackgroundColor:
		c, err := prefs.ParseHex(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == prefs.KeyTextColor {
			return m.SetTextColor(c)
		}
		return m.SetBackgroundColor(c)
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
}
