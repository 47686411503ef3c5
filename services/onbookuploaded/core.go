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
	"fmt"
	"log"
	"os"
	"time"

	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gfs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/logging"
	"github.com/flutter-zaliczenie/bookshelf/utilities/str"
	"github.com/google/uuid"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/functions/metadata"
)

// BookStore persists book records as whole documents keyed by file name
type BookStore interface {
	Set(ctx context.Context, documentID string, data interface{}) error
	DocumentPath(documentID string) string
}

// Global structure for global variables to optimize the cloud function performances.
// Set once at cold start, read only afterwards: invocations may run concurrently
type Global struct {
	environment      string
	initErr          error
	instanceName     string
	microserviceName string
	now              func() time.Time
	settings         Settings
	store            BookStore
	urlBuilder       gcs.DownloadURLBuilder
}

// NewGlobal assembles a ready to use Global from already resolved dependencies
func NewGlobal(settings Settings, store BookStore, urlBuilder gcs.DownloadURLBuilder) *Global {
	return &Global{
		environment:      settings.Core.Environment,
		instanceName:     settings.Core.InstanceName,
		microserviceName: settings.Core.ServiceName,
		now:              time.Now,
		settings:         settings,
		store:            store,
		urlBuilder:       urlBuilder,
	}
}

// Settings returns the settings in use
func (global *Global) Settings() Settings {
	return global.settings
}

// Initialize is to be executed in the init() function of the cloud function to optimize the cold start.
// On failure the error is also kept in global so that each invocation fails and is retried by the platform
func Initialize(ctx context.Context, global *Global) (err error) {
	log.SetFlags(0)
	initID := fmt.Sprintf("%v", uuid.New())
	defer func() {
		global.initErr = err
	}()

	settings, found, err := LoadSettings(PathToFunctionCode + SettingsFileName)
	if err != nil {
		log.Println(logging.Entry{
			MicroserviceName: serviceName,
			Severity:         "CRITICAL",
			Message:          "init_failed",
			Description:      fmt.Sprintf("LoadSettings %s %v", SettingsFileName, err),
			InitID:           initID,
		})
		return err
	}
	urlBuilder := gcs.NewDownloadURLBuilder(os.LookupEnv, settings.GCS.ProductionEndpoint)

	description := fmt.Sprintf("settings file found %v, download url builder %T", found, urlBuilder)
	log.Println(logging.Entry{
		MicroserviceName: settings.Core.ServiceName,
		InstanceName:     settings.Core.InstanceName,
		Environment:      settings.Core.Environment,
		Severity:         "NOTICE",
		Message:          "coldstart",
		Description:      description,
		InitID:           initID,
	})

	projectID := getProjectID(settings)
	firestoreClient, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Println(logging.Entry{
			MicroserviceName: settings.Core.ServiceName,
			InstanceName:     settings.Core.InstanceName,
			Environment:      settings.Core.Environment,
			Severity:         "CRITICAL",
			Message:          "init_failed",
			Description:      fmt.Sprintf("firestore.NewClient projectID '%s' %v", projectID, err),
			InitID:           initID,
		})
		return err
	}
	store := gfs.DocStore{
		Client:       firestoreClient,
		CollectionID: settings.FireStore.CollectionID,
	}
	*global = *NewGlobal(settings, store, urlBuilder)
	return nil
}

// getProjectID settings first, then the variables set by Cloud Functions and the Firebase emulator
func getProjectID(settings Settings) string {
	if settings.FireStore.ProjectID != "" {
		return settings.FireStore.ProjectID
	}
	for _, envVarName := range []string{"GCP_PROJECT", "GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"} {
		if projectID := os.Getenv(envVarName); projectID != "" {
			return projectID
		}
	}
	return ""
}

// EntryPoint is the function to be executed for each cloud function occurence
func EntryPoint(ctxEvent context.Context, gcsEvent gcs.Event, global *Global) error {
	if global.initErr != nil || global.store == nil {
		err := global.initErr
		if err == nil {
			err = fmt.Errorf("global not initialized")
		}
		log.Println(logging.Entry{
			MicroserviceName: serviceName,
			Severity:         "CRITICAL",
			Message:          "redo_on_transient",
			Description:      fmt.Sprintf("init failed %v", err),
			ObjectName:       gcsEvent.Name,
		})
		return err
	}
	metadata, err := metadata.FromContext(ctxEvent)
	if err != nil {
		// Assume an error on the function invoker and try again.
		log.Println(logging.Entry{
			MicroserviceName: global.microserviceName,
			InstanceName:     global.instanceName,
			Environment:      global.environment,
			Severity:         "CRITICAL",
			Message:          "redo_on_transient",
			Description:      fmt.Sprintf("no available metadata.FromContext: %v", err),
			ObjectName:       gcsEvent.Name,
		})
		return err
	}

	now := global.now()
	d := now.Sub(metadata.Timestamp)
	log.Println(logging.Entry{
		MicroserviceName:          global.microserviceName,
		InstanceName:              global.instanceName,
		Environment:               global.environment,
		Severity:                  "NOTICE",
		Message:                   "start",
		Description:               str.FlattenMapStringString(gcsEvent.StringMetadata()),
		TriggeringEventID:         metadata.EventID,
		TriggeringEventAgeSeconds: d.Seconds(),
		TriggeringEventTimestamp:  &metadata.Timestamp,
		Now:                       &now,
		ObjectName:                gcsEvent.Name,
	})

	if d.Seconds() > float64(global.settings.GCF.RetryTimeOutSeconds) {
		log.Println(logging.Entry{
			MicroserviceName:          global.microserviceName,
			InstanceName:              global.instanceName,
			Environment:               global.environment,
			Severity:                  "CRITICAL",
			Message:                   "noretry",
			Description:               "event too old",
			TriggeringEventID:         metadata.EventID,
			TriggeringEventAgeSeconds: d.Seconds(),
			TriggeringEventTimestamp:  &metadata.Timestamp,
			Now:                       &now,
			ObjectName:                gcsEvent.Name,
		})
		return nil
	}

	if gcsEvent.ResourceState == "not_exists" {
		log.Println(logging.Entry{
			MicroserviceName:  global.microserviceName,
			InstanceName:      global.instanceName,
			Environment:       global.environment,
			Severity:          "NOTICE",
			Message:           "cancel",
			Description:       "deleted object",
			TriggeringEventID: metadata.EventID,
			ObjectName:        gcsEvent.Name,
		})
		return nil
	}

	_, err = global.Record(ctxEvent, metadata.EventID, gcsEvent)
	return err
}

// Eligible reports whether the object is a book to record and the ID of its document
func (global *Global) Eligible(gcsEvent gcs.Event) (documentID string, ok bool, reason string) {
	ok, reason = checkEligibility(gcsEvent, global.settings.Books.Prefix, global.settings.Books.AcceptedContentTypes)
	if !ok {
		return "", false, reason
	}
	return getFileName(gcsEvent.Name), true, ""
}

// Record filters the event, builds the book record and writes it.
// recorded is false when the event is skipped, err is the write error, to be retried by the caller
func (global *Global) Record(ctx context.Context, eventID string, gcsEvent gcs.Event) (recorded bool, err error) {
	if _, ok, reason := global.Eligible(gcsEvent); !ok {
		log.Println(logging.Entry{
			MicroserviceName:  global.microserviceName,
			InstanceName:      global.instanceName,
			Environment:       global.environment,
			Severity:          "NOTICE",
			Message:           "cancel",
			Description:       reason,
			TriggeringEventID: eventID,
			ObjectName:        gcsEvent.Name,
		})
		return false, nil
	}

	downloadURL := global.urlBuilder.DownloadURL(gcsEvent.Bucket, gcsEvent.Name)
	bookRecord, err := buildBookRecord(gcsEvent, downloadURL, global.settings.Books.DefaultAuthor)
	if err != nil {
		log.Println(logging.Entry{
			MicroserviceName:  global.microserviceName,
			InstanceName:      global.instanceName,
			Environment:       global.environment,
			Severity:          "WARNING",
			Message:           "size_defaulted",
			Description:       err.Error(),
			TriggeringEventID: eventID,
			ObjectName:        gcsEvent.Name,
		})
	}

	documentPath := global.store.DocumentPath(bookRecord.FileName)
	err = global.store.Set(ctx, bookRecord.FileName, bookRecord)
	if err != nil {
		log.Println(logging.Entry{
			MicroserviceName:  global.microserviceName,
			InstanceName:      global.instanceName,
			Environment:       global.environment,
			Severity:          "CRITICAL",
			Message:           "redo_on_transient",
			Description:       err.Error(),
			TriggeringEventID: eventID,
			ObjectName:        gcsEvent.Name,
			DocumentPath:      documentPath,
		})
		return false, err
	}

	now := global.now()
	var latencySeconds float64
	if !gcsEvent.Updated.IsZero() {
		latencySeconds = now.Sub(gcsEvent.Updated).Seconds()
	}
	log.Println(logging.Entry{
		MicroserviceName:  global.microserviceName,
		InstanceName:      global.instanceName,
		Environment:       global.environment,
		Severity:          "NOTICE",
		Message:           fmt.Sprintf("finish set doc %s", documentPath),
		Now:               &now,
		TriggeringEventID: eventID,
		ObjectName:        gcsEvent.Name,
		DocumentPath:      documentPath,
		DownloadURL:       downloadURL,
		LatencySeconds:    latencySeconds,
	})
	return true, nil
}
