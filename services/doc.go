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
Package services structure

Each service is a background cloud function package with the same shape

## `Global` type

- Carries what is built once per function instance: settings, clients, the download URL builder
- Read only once initialized, invocations may run concurrently on one instance
- An initialization error is kept in it and returned by each invocation, so the platform retries

## `Initialize` function

- Called from the `init()` of the deployed function package, once per cold start
- Reads the optional settings.yaml from the function source code, then validates the settings
- Logs a `coldstart` entry, or `init_failed` on error

## `EntryPoint` function

- Called for each triggering event, with the event context carrying the metadata
- Logs `start`, then `finish` on success
- Returns nil to drop the event: `cancel` when filtered, `noretry` when too old
- Returns the error for the platform to retry: `redo_on_transient`

*/
package services
