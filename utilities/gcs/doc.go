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
Package gcs Google Cloud Storage helpers

- Event: the storage object payload delivered to background functions

- EncodeObjectName: object name escaping used by the Firebase storage REST API

- DownloadURLBuilder: media download URL, production or local emulator

- ListObjects: enumerate the objects under a prefix
*/
package gcs
