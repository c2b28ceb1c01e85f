// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package patch

import (
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// renameFile is swapped out in tests to force a failed write
var renameFile = os.Rename

// 📖 readFile follows symlinks in path and reads the file they lead to. It
// returns that resolved path so the write lands on the same file.
func readFile(path string) (string, []byte, fs.FileMode, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", nil, 0, classify("read", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, 0, classify("read", path, err)
	}
	if info.IsDir() {
		return "", nil, 0, &Error{Op: "read", Path: path, Kind: ErrIO, Err: errors.New("is a directory")}
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", nil, 0, classify("read", path, err)
	}
	return resolved, content, info.Mode().Perm(), nil
}

// 💾 writeFileAtomic writes content to a temp file beside path and renames it
// over path, so the target is never left half written
func writeFileAtomic(path string, content []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return classify("write", path, err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return classify("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return classify("write", path, err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return classify("write", path, err)
	}

	// Rename temp file to target (atomic operation)
	if err := renameFile(tempPath, path); err != nil {
		os.Remove(tempPath)
		return classify("write", path, err)
	}
	return nil
}

func classify(op, path string, err error) *Error {
	kind := ErrIO
	if errors.Is(err, fs.ErrNotExist) && op == "read" {
		kind = ErrNotFound
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}
