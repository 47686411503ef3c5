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

	"cloud.google.com/go/firestore"
)

// DocStore writes whole documents in one collection, keyed by document ID
type DocStore struct {
	Client       *firestore.Client
	CollectionID string
}

// DocumentPath returns collectionID/documentID
func (store DocStore) DocumentPath(documentID string) string {
	return store.CollectionID + "/" + documentID
}

// Set creates or fully overwrites the document, fields absent from data are removed
func (store DocStore) Set(ctx context.Context, documentID string, data interface{}) error {
	documentPath := store.DocumentPath(documentID)
	_, err := store.Client.Doc(documentPath).Set(ctx, data)
	if err != nil {
		return fmt.Errorf("firestoreClient.Doc(documentPath).Set %s %w", documentPath, err)
	}
	return nil
}

// Exists reports whether the document is already recorded
func (store DocStore) Exists(ctx context.Context, documentID string, retriesNumber int) (bool, error) {
	_, found, err := GetDoc(ctx, store.Client, store.DocumentPath(documentID), retriesNumber)
	return found, err
}
