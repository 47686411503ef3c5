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

package logging

import (
	"encoding/json"
	"log"
	"time"
)

// Entry defines a Google Cloud logging structured entry
// https://cloud.google.com/logging/docs/structured-logging#special-payload-fields
type Entry struct {
	MicroserviceName          string     `json:"microservice_name"`
	InstanceName              string     `json:"instance_name,omitempty"`
	Environment               string     `json:"environment,omitempty"`
	Severity                  string     `json:"severity,omitempty"`
	Message                   string     `json:"message"`
	Description               string     `json:"description,omitempty"`
	Now                       *time.Time `json:"now,omitempty"`
	Trace                     string     `json:"logging.googleapis.com/trace,omitempty"`
	InitID                    string     `json:"init_id,omitempty"`
	TriggeringEventID         string     `json:"triggering_event_id,omitempty"`
	TriggeringEventTimestamp  *time.Time `json:"triggering_event_timestamp,omitempty"`
	TriggeringEventAgeSeconds float64    `json:"triggering_event_age_seconds,omitempty"`
	ObjectName                string     `json:"object_name,omitempty"`
	DocumentPath              string     `json:"document_path,omitempty"`
	DownloadURL               string     `json:"download_url,omitempty"`
	LatencySeconds            float64    `json:"latency_seconds,omitempty"`
}

// String renders an entry structure to the JSON format expected by Cloud Logging.
func (e Entry) String() string {
	if e.Severity == "" {
		e.Severity = "INFO"
	}
	out, err := json.Marshal(e)
	if err != nil {
		log.Printf("json.Marshal: %v", err)
	}
	return string(out)
}
