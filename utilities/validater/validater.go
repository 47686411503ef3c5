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

package validater

import (
	"fmt"
	"log"
	"reflect"
	"strings"
)

const tagKeyName = "valid"

type validater interface {
	validate(interface{}) (bool, error)
}

type defaultValidater struct {
}

func (v defaultValidater) validate(val interface{}) (bool, error) {
	return true, nil
}

type isNotZeroValueValidater struct {
}

func (v isNotZeroValueValidater) validate(value interface{}) (bool, error) {
	typ := reflect.TypeOf(value)
	kind := typ.Kind()
	switch kind {
	case reflect.String:
		if len(value.(string)) == 0 {
			return false, fmt.Errorf("Should NOT be a zero value %s", kind)
		}
	case reflect.Int64:
		if value.(int64) == 0 {
			return false, fmt.Errorf("Should NOT be a zero value %s", kind)
		}
	case reflect.Slice:
		if reflect.ValueOf(value).Len() == 0 {
			return false, fmt.Errorf("Should NOT be a zero value %s", kind)
		}
	default:
		return false, fmt.Errorf("Unmanaged kind by 'isNotZeroValueValidater' %s", kind)
	}
	return true, nil
}

// isFolderPrefixValidater an object name prefix acting as a folder: "books/"
type isFolderPrefixValidater struct {
}

func (v isFolderPrefixValidater) validate(value interface{}) (bool, error) {
	prefix, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("Should be string")
	}
	if prefix == "" || prefix == "/" || strings.HasPrefix(prefix, "/") || !strings.HasSuffix(prefix, "/") {
		return false, fmt.Errorf("Should be a folder like prefix e.g. 'books/', is '%s'", prefix)
	}
	return true, nil
}

// isMIMETypeListValidater each element is type/subtype, an empty list is valid
type isMIMETypeListValidater struct {
}

func (v isMIMETypeListValidater) validate(value interface{}) (bool, error) {
	mimeTypes, ok := value.([]string)
	if !ok {
		return false, fmt.Errorf("Should be []string")
	}
	for _, mimeType := range mimeTypes {
		parts := strings.Split(mimeType, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return false, fmt.Errorf("Should be a type/subtype MIME type, is '%s'", mimeType)
		}
	}
	return true, nil
}

func getValidater(kind reflect.Kind, tagValue string) validater {
	tagValueParts := strings.Split(tagValue, ",")
	tagPrefix := tagValueParts[0]
	switch tagPrefix {
	case "isNotZeroValue":
		return isNotZeroValueValidater{}
	case "isFolderPrefix":
		return isFolderPrefixValidater{}
	case "isMIMETypeList":
		return isMIMETypeListValidater{}
	}
	return defaultValidater{}
}

func getValidationErrors(structure interface{}, pedigree string) []error {
	errs := []error{}
	if structure == nil {
		return errs
	}
	value := reflect.ValueOf(structure)
	if value.Kind() == reflect.Interface || value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return []error{fmt.Errorf("type %s is not a struct", value.Kind())}
	}

	for i := 0; i < value.NumField(); i++ {
		valueField := value.Field(i)
		typeField := value.Type().Field(i)
		if !typeField.IsExported() {
			continue
		}
		if valueField.Kind() == reflect.Interface {
			valueField = valueField.Elem()
		}
		// time.Time is a struct with only unexported fields, tag it `valid:"-"` to stop the recursion
		if typeField.Tag.Get(tagKeyName) != "-" &&
			(valueField.Kind() == reflect.Struct || (valueField.Kind() == reflect.Ptr && valueField.Elem().Kind() == reflect.Struct)) {
			childErrs := getValidationErrors(valueField.Interface(), fmt.Sprintf("%s/%s", pedigree, typeField.Name))
			errs = append(errs, childErrs...)
		} else {
			validater := getValidater(typeField.Type.Kind(), typeField.Tag.Get(tagKeyName))
			ok, err := validater.validate(valueField.Interface())
			if !ok {
				errs = append(errs, fmt.Errorf("Validater error %s '%s' %v", pedigree, typeField.Name, err))
			}
		}
	}
	return errs
}

// ValidateStruct check the structure fields against their `valid` tag, log each finding and return an error if any
func ValidateStruct(structure interface{}, pedigree string) (err error) {
	errors := getValidationErrors(structure, pedigree)
	if len(errors) > 0 {
		for _, err := range errors {
			log.Println(err)
		}
		return fmt.Errorf("Error, settings validation failed %s", pedigree)
	}
	return nil
}
