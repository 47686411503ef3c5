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
	"github.com/flutter-zaliczenie/bookshelf/utilities/ffo"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/validater"
)

const (
	// PathToFunctionCode where Cloud Functions unpacks the deployed source code
	PathToFunctionCode = "./serverless_function_source_code/"
	// SettingsFileName optional settings file at the root of the function source code
	SettingsFileName = "settings.yaml"
	serviceName      = "onbookuploaded"
)

// Settings service settings, defaults from NewSettings overridden by the settings file
type Settings struct {
	Core struct {
		ServiceName  string `yaml:"serviceName" valid:"isNotZeroValue"`
		InstanceName string `yaml:"instanceName"`
		Environment  string `yaml:"environment"`
	}
	GCF struct {
		RetryTimeOutSeconds int64 `yaml:"retryTimeOutSeconds" valid:"isNotZeroValue"`
	}
	GCS struct {
		ProductionEndpoint string `yaml:"productionEndpoint" valid:"isNotZeroValue"`
	}
	FireStore struct {
		ProjectID    string `yaml:"projectID"`
		CollectionID string `yaml:"collectionID" valid:"isNotZeroValue"`
	} `yaml:"fireStore"`
	Books struct {
		Prefix               string   `yaml:"prefix" valid:"isFolderPrefix"`
		AcceptedContentTypes []string `yaml:"acceptedContentTypes" valid:"isMIMETypeList"`
		DefaultAuthor        string   `yaml:"defaultAuthor" valid:"isNotZeroValue"`
	}
}

// NewSettings settings with default values.
// AcceptedContentTypes is empty: the prefix is the only filter
func NewSettings() Settings {
	var settings Settings
	settings.Core.ServiceName = serviceName
	settings.Core.InstanceName = serviceName
	settings.GCF.RetryTimeOutSeconds = 600
	settings.GCS.ProductionEndpoint = gcs.ProductionEndpoint
	settings.FireStore.CollectionID = "books"
	settings.Books.Prefix = "books/"
	settings.Books.AcceptedContentTypes = []string{}
	settings.Books.DefaultAuthor = "Unknown"
	return settings
}

// LoadSettings overrides default settings with the yaml file when it exists, then validates them
func LoadSettings(path string) (settings Settings, found bool, err error) {
	settings = NewSettings()
	found, err = ffo.ReadUnmarshalYAMLIfExists(path, &settings)
	if err != nil {
		return settings, found, err
	}
	if settings.Books.AcceptedContentTypes == nil {
		settings.Books.AcceptedContentTypes = []string{}
	}
	err = validater.ValidateStruct(settings, serviceName+"Settings")
	if err != nil {
		return settings, found, err
	}
	return settings, found, nil
}
