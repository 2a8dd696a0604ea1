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

package prefs

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrPermissionStale is returned when a stored folder bookmark no longer
// names a folder we can write to.
var ErrPermissionStale = errors.New("folder bookmark is stale")

type bookmark struct {
	Path    string `json:"path"`
	Granted int64  `json:"granted"`
}

// NewBookmark returns an opaque token for a folder the user chose.
func NewBookmark(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := checkFolder(abs); err != nil {
		return "", err
	}
	b, err := json.Marshal(bookmark{Path: abs, Granted: time.Now().Unix()})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeBookmark(token string) (bookmark, error) {
	var bm bookmark
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return bm, err
	}
	err = json.Unmarshal(raw, &bm)
	return bm, err
}

// BookmarkPath returns the folder a token was made for, whether or not
// it can still be used. It returns "" for a token that cannot be read.
func BookmarkPath(token string) string {
	bm, err := decodeBookmark(token)
	if err != nil {
		return ""
	}
	return bm.Path
}

// ResolveBookmark turns a token back into a usable folder.
func ResolveBookmark(token string) (string, error) {
	bm, err := decodeBookmark(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPermissionStale, err)
	}
	if bm.Path == "" {
		return "", fmt.Errorf("%w: empty path", ErrPermissionStale)
	}
	if err := checkFolder(bm.Path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPermissionStale, err)
	}
	return bm.Path, nil
}

func checkFolder(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return writable(dir)
}
