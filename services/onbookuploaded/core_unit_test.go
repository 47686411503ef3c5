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
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"

	"cloud.google.com/go/functions/metadata"
)

type memoryStore struct {
	mu     sync.Mutex
	docs   map[string]BookRecord
	writes int
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]BookRecord)}
}

func (store *memoryStore) DocumentPath(documentID string) string {
	return "books/" + documentID
}

func (store *memoryStore) Set(ctx context.Context, documentID string, data interface{}) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.writes++
	if store.err != nil {
		return store.err
	}
	store.docs[documentID] = data.(BookRecord)
	return nil
}

func newTestGlobal(store BookStore, urlBuilder gcs.DownloadURLBuilder, now time.Time) *Global {
	global := NewGlobal(NewSettings(), store, urlBuilder)
	global.now = func() time.Time { return now }
	return global
}

func newEventContext(eventID string, timestamp time.Time) context.Context {
	return metadata.NewContext(context.Background(), &metadata.Metadata{
		EventID:   eventID,
		Timestamp: timestamp,
		EventType: "google.storage.object.finalize",
	})
}

func TestUnitEntryPoint(t *testing.T) {
	eventTime := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	var testCases = []struct {
		name            string
		urlBuilder      gcs.DownloadURLBuilder
		event           gcs.Event
		now             time.Time
		wantWritten     bool
		wantDocumentID  string
		wantTitle       string
		wantAuthor      string
		wantFormat      string
		wantSize        int64
		wantDownloadURL string
	}{
		{
			name:       "productionWithMetadata",
			urlBuilder: gcs.ProductionURLBuilder{},
			event: gcs.Event{
				Bucket:        "my-bucket",
				Name:          "books/moby-dick.pdf",
				ContentType:   "application/pdf",
				Size:          "204800",
				ResourceState: "exists",
				Metadata: map[string]interface{}{
					"title":  "Moby Dick",
					"author": "Herman Melville",
				},
			},
			now:             eventTime.Add(2 * time.Second),
			wantWritten:     true,
			wantDocumentID:  "moby-dick.pdf",
			wantTitle:       "Moby Dick",
			wantAuthor:      "Herman Melville",
			wantFormat:      "pdf",
			wantSize:        204800,
			wantDownloadURL: "https://firebasestorage.googleapis.com/v0/b/my-bucket/o/books%2Fmoby-dick.pdf?alt=media",
		},
		{
			name:       "otherFolderSkipped",
			urlBuilder: gcs.ProductionURLBuilder{},
			event: gcs.Event{
				Bucket:      "my-bucket",
				Name:        "covers/image.png",
				ContentType: "image/png",
				Size:        "10",
			},
			now:         eventTime.Add(time.Second),
			wantWritten: false,
		},
		{
			name:       "emulatorNoMetadata",
			urlBuilder: gcs.EmulatorURLBuilder{Host: "127.0.0.1:9199"},
			event: gcs.Event{
				Bucket:      "demo-bucket",
				Name:        "books/report.epub",
				ContentType: "application/epub+zip",
				Size:        "1024",
			},
			now:             eventTime.Add(time.Second),
			wantWritten:     true,
			wantDocumentID:  "report.epub",
			wantTitle:       "report",
			wantAuthor:      "Unknown",
			wantFormat:      "epub",
			wantSize:        1024,
			wantDownloadURL: "http://127.0.0.1:9199/v0/b/demo-bucket/o/books%2Freport.epub?alt=media",
		},
		{
			name:       "sizeNotANumberStillWritten",
			urlBuilder: gcs.ProductionURLBuilder{},
			event: gcs.Event{
				Bucket: "my-bucket",
				Name:   "books/README",
				Size:   "",
			},
			now:             eventTime.Add(time.Second),
			wantWritten:     true,
			wantDocumentID:  "README",
			wantTitle:       "README",
			wantAuthor:      "Unknown",
			wantFormat:      "",
			wantSize:        0,
			wantDownloadURL: "https://firebasestorage.googleapis.com/v0/b/my-bucket/o/books%2FREADME?alt=media",
		},
		{
			name:       "deletedObjectSkipped",
			urlBuilder: gcs.ProductionURLBuilder{},
			event: gcs.Event{
				Bucket:        "my-bucket",
				Name:          "books/gone.pdf",
				ResourceState: "not_exists",
			},
			now:         eventTime.Add(time.Second),
			wantWritten: false,
		},
		{
			name:       "eventTooOldDropped",
			urlBuilder: gcs.ProductionURLBuilder{},
			event: gcs.Event{
				Bucket: "my-bucket",
				Name:   "books/late.pdf",
				Size:   "1",
			},
			now:         eventTime.Add(time.Hour),
			wantWritten: false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := newMemoryStore()
			global := newTestGlobal(store, tc.urlBuilder, tc.now)
			err := EntryPoint(newEventContext("event-"+tc.name, eventTime), tc.event, global)
			if err != nil {
				t.Fatalf("Want no error and got %v", err)
			}
			if !tc.wantWritten {
				if store.writes != 0 {
					t.Errorf("want no write got %d", store.writes)
				}
				return
			}
			if store.writes != 1 {
				t.Fatalf("want 1 write got %d", store.writes)
			}
			got, ok := store.docs[tc.wantDocumentID]
			if !ok {
				t.Fatalf("want document '%s' got %v", tc.wantDocumentID, store.docs)
			}
			if got.Title != tc.wantTitle {
				t.Errorf("title want '%s' got '%s'", tc.wantTitle, got.Title)
			}
			if got.Author != tc.wantAuthor {
				t.Errorf("author want '%s' got '%s'", tc.wantAuthor, got.Author)
			}
			if got.Format != tc.wantFormat {
				t.Errorf("format want '%s' got '%s'", tc.wantFormat, got.Format)
			}
			if got.Size != tc.wantSize {
				t.Errorf("size want %d got %d", tc.wantSize, got.Size)
			}
			if got.DownloadURL != tc.wantDownloadURL {
				t.Errorf("downloadUrl want '%s' got '%s'", tc.wantDownloadURL, got.DownloadURL)
			}
			if got.FilePath != tc.event.Name {
				t.Errorf("filePath want '%s' got '%s'", tc.event.Name, got.FilePath)
			}
			if !got.UploadedAt.IsZero() {
				t.Errorf("uploadedAt is set by the database, want zero got %v", got.UploadedAt)
			}
		})
	}
}

func TestUnitEntryPointSameEventTwice(t *testing.T) {
	eventTime := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	global := newTestGlobal(store, gcs.ProductionURLBuilder{}, eventTime.Add(time.Second))
	event := gcs.Event{
		Bucket:      "my-bucket",
		Name:        "books/moby-dick.pdf",
		ContentType: "application/pdf",
		Size:        "204800",
	}
	ctx := newEventContext("redelivered", eventTime)
	if err := EntryPoint(ctx, event, global); err != nil {
		t.Fatalf("first delivery %v", err)
	}
	first := store.docs["moby-dick.pdf"]
	if err := EntryPoint(ctx, event, global); err != nil {
		t.Fatalf("second delivery %v", err)
	}
	if len(store.docs) != 1 {
		t.Errorf("want 1 document got %d", len(store.docs))
	}
	if store.docs["moby-dick.pdf"] != first {
		t.Errorf("want identical document, got %+v then %+v", first, store.docs["moby-dick.pdf"])
	}
}

func TestUnitEntryPointReuploadOverwrites(t *testing.T) {
	eventTime := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	global := newTestGlobal(store, gcs.ProductionURLBuilder{}, eventTime.Add(time.Second))
	event := gcs.Event{
		Bucket:   "my-bucket",
		Name:     "books/moby-dick.pdf",
		Size:     "1",
		Metadata: map[string]interface{}{"author": "Herman Melville"},
	}
	if err := EntryPoint(newEventContext("upload1", eventTime), event, global); err != nil {
		t.Fatal(err)
	}
	event.Size = "2"
	event.Metadata = nil
	if err := EntryPoint(newEventContext("upload2", eventTime), event, global); err != nil {
		t.Fatal(err)
	}
	got := store.docs["moby-dick.pdf"]
	if got.Size != 2 || got.Author != "Unknown" {
		t.Errorf("want last upload to win, got %+v", got)
	}
}

func TestUnitEntryPointErrors(t *testing.T) {
	eventTime := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	event := gcs.Event{Bucket: "my-bucket", Name: "books/moby-dick.pdf", Size: "1"}

	t.Run("writeErrorReturned", func(t *testing.T) {
		store := newMemoryStore()
		store.err = errors.New("rpc error: code = Unavailable")
		global := newTestGlobal(store, gcs.ProductionURLBuilder{}, eventTime.Add(time.Second))
		err := EntryPoint(newEventContext("e1", eventTime), event, global)
		if err == nil {
			t.Errorf("Want an error and got no error")
		}
	})

	t.Run("initErrorReturned", func(t *testing.T) {
		store := newMemoryStore()
		global := newTestGlobal(store, gcs.ProductionURLBuilder{}, eventTime.Add(time.Second))
		global.initErr = errors.New("firestore.NewClient failed")
		err := EntryPoint(newEventContext("e2", eventTime), event, global)
		if err == nil || !strings.Contains(err.Error(), "firestore.NewClient") {
			t.Errorf("want init error got %v", err)
		}
		if store.writes != 0 {
			t.Errorf("want no write got %d", store.writes)
		}
	})

	t.Run("notInitialized", func(t *testing.T) {
		var global Global
		if err := EntryPoint(newEventContext("e3", eventTime), event, &global); err == nil {
			t.Errorf("Want an error and got no error")
		}
	})

	t.Run("noMetadata", func(t *testing.T) {
		store := newMemoryStore()
		global := newTestGlobal(store, gcs.ProductionURLBuilder{}, eventTime.Add(time.Second))
		if err := EntryPoint(context.Background(), event, global); err == nil {
			t.Errorf("Want an error and got no error")
		}
	})
}

func TestUnitRecordStrictContentTypes(t *testing.T) {
	settings := NewSettings()
	settings.Books.AcceptedContentTypes = []string{"application/pdf", "application/epub+zip"}
	store := newMemoryStore()
	global := NewGlobal(settings, store, gcs.ProductionURLBuilder{})

	recorded, err := global.Record(context.Background(), "e1", gcs.Event{Name: "books/notes.txt", ContentType: "text/plain", Size: "1"})
	if err != nil || recorded {
		t.Errorf("want skipped got recorded %v err %v", recorded, err)
	}
	recorded, err = global.Record(context.Background(), "e2", gcs.Event{Name: "books/a.pdf", ContentType: "application/pdf", Size: "1"})
	if err != nil || !recorded {
		t.Errorf("want recorded got recorded %v err %v", recorded, err)
	}
	if store.writes != 1 {
		t.Errorf("want 1 write got %d", store.writes)
	}
}
