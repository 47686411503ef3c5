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

package onbookuploaded

import (
	"fmt"
	"strings"

	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/str"
)

// checkEligibility returns false and the reason when the object is not a book to record.
// An empty acceptedContentTypes list accepts any content type
func checkEligibility(event gcs.Event, prefix string, acceptedContentTypes []string) (ok bool, reason string) {
	if event.Name == "" {
		return false, "no object name"
	}
	if !strings.HasPrefix(event.Name, prefix) {
		return false, fmt.Sprintf("not in %s folder", prefix)
	}
	if getFileName(event.Name) == "" {
		return false, "folder placeholder, no file name"
	}
	if len(acceptedContentTypes) > 0 && !str.Find(acceptedContentTypes, event.ContentType) {
		return false, fmt.Sprintf("content type '%s' not in %v", event.ContentType, acceptedContentTypes)
	}
	return true, ""
}
