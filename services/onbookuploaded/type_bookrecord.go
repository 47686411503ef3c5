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
	"time"
)

// BookRecord FireStore document describing one uploaded book file
type BookRecord struct {
	FileName    string    `json:"fileName" firestore:"fileName"`
	FilePath    string    `json:"filePath" firestore:"filePath"`
	FileURL     string    `json:"fileUrl" firestore:"fileUrl"`
	DownloadURL string    `json:"downloadUrl" firestore:"downloadUrl"`
	Title       string    `json:"title" firestore:"title"`
	Author      string    `json:"author" firestore:"author"`
	Format      string    `json:"format" firestore:"format"`
	ContentType string    `json:"contentType" firestore:"contentType"`
	Size        int64     `json:"size" firestore:"size"`
	UploadedAt  time.Time `json:"uploadedAt" firestore:"uploadedAt,serverTimestamp"`
}
