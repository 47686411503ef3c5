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

package gcs

import (
	"net/url"
	"strings"
)

// QueryEscape leaves only A-Z a-z 0-9 - _ . ~ unescaped and turns space into '+'
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeObjectName escapes a full object name as one path segment, '/' included.
// Output matches javascript encodeURIComponent, which the Firebase storage REST API expects in /o/{object}
func EncodeObjectName(objectName string) string {
	return componentReplacer.Replace(url.QueryEscape(objectName))
}
