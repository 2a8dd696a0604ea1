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

package session

import (
	"errors"
	"fmt"
)

// ErrNoDestination is returned by Persist when no folder has been chosen.
// It is not a failure: there is simply nowhere to write yet.
var ErrNoDestination = errors.New("no destination folder chosen")

// ErrInvalidName is returned by Rename for names that are not a plain file name.
var ErrInvalidName = errors.New("invalid file name")

// IOError wraps a failed file system operation. The session rolls back
// whatever the operation had changed before returning one.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
