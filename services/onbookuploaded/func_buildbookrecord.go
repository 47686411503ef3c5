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
	"fmt"
	"strconv"
	"strings"

	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
)

// getFileName returns the last / delimited segment of the object name
func getFileName(objectName string) string {
	return objectName[strings.LastIndex(objectName, "/")+1:]
}

// getFormat returns what follows the last dot, empty when there is no dot
func getFormat(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return ""
	}
	return fileName[i+1:]
}

// getDefaultTitle strips a non empty extension. A leading dot is not an extension separator: .hidden stays .hidden
func getDefaultTitle(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i <= 0 || i == len(fileName)-1 {
		return fileName
	}
	return fileName[:i]
}

// buildBookRecord always returns a usable record.
// err reports a size that is not a base 10 integer, the record size is then 0.
// UploadedAt is left zero for FireStore to set the server timestamp
func buildBookRecord(event gcs.Event, downloadURL string, defaultAuthor string) (bookRecord BookRecord, err error) {
	bookRecord.FileName = getFileName(event.Name)
	bookRecord.FilePath = event.Name
	bookRecord.FileURL = event.Name
	bookRecord.DownloadURL = downloadURL
	bookRecord.Format = getFormat(bookRecord.FileName)
	bookRecord.ContentType = event.ContentType

	var ok bool
	if bookRecord.Title, ok = event.MetadataString("title"); !ok {
		bookRecord.Title = getDefaultTitle(bookRecord.FileName)
	}
	if bookRecord.Author, ok = event.MetadataString("author"); !ok {
		bookRecord.Author = defaultAuthor
	}

	bookRecord.Size, err = strconv.ParseInt(event.Size, 10, 64)
	if err != nil {
		bookRecord.Size = 0
		return bookRecord, fmt.Errorf("strconv.ParseInt(event.Size) '%s' %w", event.Size, err)
	}
	return bookRecord, nil
}
