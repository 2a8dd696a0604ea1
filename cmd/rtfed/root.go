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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/timburks/rtfed/commander"
	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/editor"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/screen"
	"github.com/timburks/rtfed/session"
)

type app struct {
	configDir string
	folder    string
	eval      string
	debounce  time.Duration
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "rtfed [file]",
		Short:        "Edit rich text documents in the terminal",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}
	cmd.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "Directory holding preferences (default $RTFED_CONFIG_DIR or ~/.rtfed)")
	cmd.Flags().StringVar(&a.folder, "folder", "", "Folder where new documents are saved")
	cmd.Flags().StringVar(&a.eval, "eval", "", "Run a lisp script instead of the editor")
	cmd.Flags().DurationVar(&a.debounce, "debounce", session.DefaultDebounce, "Quiet period before an edit is autosaved")

	cmd.AddCommand(newCatCmd())
	cmd.AddCommand(newPrefsCmd(a))
	return cmd
}

func (a *app) openPrefs(ctx context.Context) (*prefs.Manager, *prefs.SQLiteStore, error) {
	dir := a.configDir
	if dir == "" {
		var err error
		if dir, err = prefs.ConfigDir(); err != nil {
			return nil, nil, err
		}
	}
	store, err := prefs.OpenSQLiteStore(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	m, err := prefs.Load(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return m, store, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	m, store, err := a.openPrefs(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if a.eval == "" {
		// Open a log file; the terminal belongs to the editor.
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(home, ".rtfedlog"), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o666)
		if err != nil {
			return err
		}
		log.SetOutput(f)
		defer f.Close()
	}

	s := session.New(session.Options{
		Prefs:    m,
		Logger:   log.Default(),
		Debounce: a.debounce,
	})
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("closing: %v", err)
		}
	}()
	if err := s.Restore(); err != nil {
		log.Printf("restoring: %v", err)
	}
	if a.folder != "" {
		if err := s.ChooseFolder(a.folder); err != nil {
			return err
		}
	}
	if len(args) == 1 {
		if err := openOrCreate(s, args[0]); err != nil {
			return err
		}
	} else if s.State() == session.StateEmpty {
		if err := s.NewDocument(); err != nil {
			log.Printf("new document: %v", err)
		}
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(s)

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e, s, m)
	defer c.Close()

	if a.eval != "" {
		// Run a script and exit.
		return c.ParseEvalFile(a.eval)
	}

	scr := screen.NewScreen()
	if scr == nil {
		return errors.New("cannot open the terminal")
	}
	defer scr.Close()

	// Run the main event loop.
	for c.IsRunning() {
		scr.Render(e, c)
		if err := c.ProcessEvent(scr.GetNextEvent()); err != nil {
			log.Output(1, err.Error())
		}
	}
	return nil
}

// openOrCreate opens path, first creating an empty document there if
// nothing exists yet.
func openOrCreate(s *session.Session, path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(path, session.Encode(document.New()), 0o644); err != nil {
			return err
		}
	case err != nil:
		return err
	case info.IsDir():
		return fmt.Errorf("%s is a directory", path)
	}
	return s.OpenDocument(path)
}
