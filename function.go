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

package bookshelf

import (
	"context"

	"github.com/flutter-zaliczenie/bookshelf/services/onbookuploaded"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
)

var global onbookuploaded.Global

// OnBookUploaded is the function to be executed for each cloud function occurence
func OnBookUploaded(ctxEvent context.Context, gcsEvent gcs.Event) error {
	return onbookuploaded.EntryPoint(ctxEvent, gcsEvent, &global)
}

func init() {
	// An init failure is logged and returned by each invocation
	_ = onbookuploaded.Initialize(context.Background(), &global)
}
