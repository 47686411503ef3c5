// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the 'License');
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an 'AS IS' BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ffo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

// ReadUnmarshalYAML read bytes from a yaml file and unmarshal in a structure.
// Fields absent from the file keep the value they had in settings
func ReadUnmarshalYAML(path string, settings interface{}) (err error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(bytes, settings)
	if err != nil {
		return fmt.Errorf("yaml.Unmarshal %s %w", path, err)
	}
	return nil
}

// ReadUnmarshalYAMLIfExists is ReadUnmarshalYAML tolerating a missing file, found reports if the file was read
func ReadUnmarshalYAMLIfExists(path string, settings interface{}) (found bool, err error) {
	err = ReadUnmarshalYAML(path, settings)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, nil
}
