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
	"context"
	"os"
	"testing"
	"time"

	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gfs"

	"cloud.google.com/go/firestore"
)

func TestIntegEntryPointFirestoreEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-bookshelf")
	if err != nil {
		t.Fatalf("firestore.NewClient %v", err)
	}
	defer client.Close()

	settings := NewSettings()
	settings.FireStore.CollectionID = "books_integ_test"
	store := gfs.DocStore{Client: client, CollectionID: settings.FireStore.CollectionID}
	global := NewGlobal(settings, store, gcs.EmulatorURLBuilder{})

	eventTime := time.Now()
	event := gcs.Event{
		Bucket:      "demo-bookshelf.appspot.com",
		Name:        "books/moby-dick.pdf",
		ContentType: "application/pdf",
		Size:        "204800",
		Metadata:    map[string]interface{}{"title": "Moby Dick", "author": "Herman Melville"},
	}
	if err := EntryPoint(newEventContext("integ-1", eventTime), event, global); err != nil {
		t.Fatalf("EntryPoint %v", err)
	}

	documentSnap, found, err := gfs.GetDoc(ctx, client, store.DocumentPath("moby-dick.pdf"), 3)
	if err != nil || !found {
		t.Fatalf("want document found got %v err %v", found, err)
	}
	var got BookRecord
	if err := documentSnap.DataTo(&got); err != nil {
		t.Fatalf("DataTo %v", err)
	}
	if got.Title != "Moby Dick" || got.Format != "pdf" || got.Size != 204800 {
		t.Errorf("unexpected record %+v", got)
	}
	if got.UploadedAt.IsZero() {
		t.Errorf("want uploadedAt set by the server timestamp")
	}
	if got.DownloadURL != "http://127.0.0.1:9199/v0/b/demo-bookshelf.appspot.com/o/books%2Fmoby-dick.pdf?alt=media" {
		t.Errorf("unexpected downloadUrl %s", got.DownloadURL)
	}
}
