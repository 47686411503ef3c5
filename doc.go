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
Package bookshelf records books uploaded to Firebase storage in a FireStore catalog

## What

When a file lands under books/ in the storage bucket, a FireStore document describing it is written in the books collection. The mobile app lists the catalog from FireStore and downloads the files through the recorded downloadUrl.

### Parts

1. OnBookUploaded, the Cloud Function triggered by object finalize events
2. backfillbooks, a command line tool recording objects uploaded before the function was deployed

## Why

- Listing a FireStore collection is cheaper and faster than listing a bucket from a mobile app
- Title and author come from the upload custom metadata, no second write from the client is needed
*/
package bookshelf
