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

package gfs

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/flutter-zaliczenie/bookshelf/utilities/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GetDoc check if a document exist with retries.
// NotFound is an answer, not a transient error: it returns immediately with found false and a nil error
func GetDoc(ctx context.Context,
	firestoreClient *firestore.Client,
	documentPath string,
	retriesNumber int) (documentSnap *firestore.DocumentSnapshot, found bool, err error) {
	for i := 0; i < retriesNumber; i++ {
		documentSnap, err = firestoreClient.Doc(documentPath).Get(ctx)
		if err == nil {
			return documentSnap, documentSnap.Exists(), nil
		}
		if status.Code(err) == codes.NotFound {
			return documentSnap, false, nil
		}
		log.Println(logging.Entry{
			Severity:     "WARNING",
			Message:      "redo_on_transient",
			Description:  fmt.Sprintf("iteration %d firestoreClient.Doc(documentPath).Get(ctx) %v", i, err),
			DocumentPath: documentPath,
		})
		time.Sleep(time.Duration(i) * 100 * time.Millisecond)
	}
	return documentSnap, false, err
}
