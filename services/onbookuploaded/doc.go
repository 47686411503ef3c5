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

/*
Package onbookuploaded record book files uploaded to Cloud Storage as FireStore documents

Triggered by

Cloud Storage object finalize events, one per completed upload in the bucket.

Instances

- one per bucket holding books.

Output

One FireStore document per book file, in collection books by default, the document ID being the file name.

A later upload with the same file name overwrites the document: there is no versioning.

Document fields

- fileName, filePath, fileUrl

- downloadUrl: the Firebase storage media URL, targeting the local storage emulator when running in the emulator

- title: custom metadata title, defaults to the file name without its extension

- author: custom metadata author, defaults to Unknown

- format: the file name extension, empty when there is none

- contentType, size

- uploadedAt: server timestamp set by FireStore on write

Filtering

Objects outside the prefix, books/ by default, are ignored.
When acceptedContentTypes is set, e.g. application/pdf and application/epub+zip, objects of other content types are ignored too.

Cardinality

One-one, one finalize event - at most one FireStore document written

Automatic retrying

Yes, by the platform. The write is not retried within an invocation.
Events older than retryTimeOutSeconds are dropped.

Is recurssive

No.

Settings

Read from settings.yaml in the function source code root when present, else defaults apply.

Environment variables

- GCP_PROJECT, GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT: FireStore project when not set in settings

- FUNCTIONS_EMULATOR, FIREBASE_STORAGE_EMULATOR_HOST: emulator mode and storage emulator address

Implementation example

 package p
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
     onbookuploaded.Initialize(context.Background(), &global)
 }

*/
package onbookuploaded
