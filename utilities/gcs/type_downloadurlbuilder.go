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

package gcs

import (
	"fmt"
)

const (
	// DefaultEmulatorHost is the Firebase storage emulator listen address when none is provided
	DefaultEmulatorHost = "127.0.0.1:9199"
	// ProductionEndpoint is the public Firebase storage REST API host
	ProductionEndpoint = "firebasestorage.googleapis.com"
	downloadURLPattern = "%s://%s/v0/b/%s/o/%s?alt=media"
)

// DownloadURLBuilder computes the media download URL of an object
type DownloadURLBuilder interface {
	DownloadURL(bucketName string, objectName string) string
}

// ProductionURLBuilder targets the public Firebase storage endpoint over https
type ProductionURLBuilder struct {
	Endpoint string
}

// DownloadURL implements DownloadURLBuilder
func (builder ProductionURLBuilder) DownloadURL(bucketName string, objectName string) string {
	endpoint := builder.Endpoint
	if endpoint == "" {
		endpoint = ProductionEndpoint
	}
	return fmt.Sprintf(downloadURLPattern, "https", endpoint, bucketName, EncodeObjectName(objectName))
}

// EmulatorURLBuilder targets a local Firebase storage emulator over http
type EmulatorURLBuilder struct {
	Host string
}

// DownloadURL implements DownloadURLBuilder
func (builder EmulatorURLBuilder) DownloadURL(bucketName string, objectName string) string {
	host := builder.Host
	if host == "" {
		host = DefaultEmulatorHost
	}
	return fmt.Sprintf(downloadURLPattern, "http", host, bucketName, EncodeObjectName(objectName))
}

// NewDownloadURLBuilder resolves the builder from the runtime environment signals.
// The emulator is selected when FUNCTIONS_EMULATOR is "true" or FIREBASE_STORAGE_EMULATOR_HOST is set.
// lookupEnv has the os.LookupEnv signature
func NewDownloadURLBuilder(lookupEnv func(string) (string, bool), productionEndpoint string) DownloadURLBuilder {
	functionsEmulator, _ := lookupEnv("FUNCTIONS_EMULATOR")
	emulatorHost, _ := lookupEnv("FIREBASE_STORAGE_EMULATOR_HOST")
	if functionsEmulator == "true" || emulatorHost != "" {
		return EmulatorURLBuilder{Host: emulatorHost}
	}
	return ProductionURLBuilder{Endpoint: productionEndpoint}
}
