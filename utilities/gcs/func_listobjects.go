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
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// ListObjects retreive the objects under a prefix as finalize events
func ListObjects(ctx context.Context, bucketHandle *storage.BucketHandle, prefix string) (events []Event, err error) {
	objectsIterator := bucketHandle.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		objectAttrs, err := objectsIterator.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return events, fmt.Errorf("objectsIterator.Next: %w", err)
		}
		events = append(events, EventFromObjectAttrs(objectAttrs))
	}
	return events, nil
}

// EventFromObjectAttrs maps storage object attributes to the event a finalize trigger would deliver
func EventFromObjectAttrs(objectAttrs *storage.ObjectAttrs) (event Event) {
	event.Kind = "storage#object"
	event.Name = objectAttrs.Name
	event.Bucket = objectAttrs.Bucket
	event.ID = fmt.Sprintf("%s/%s/%d", objectAttrs.Bucket, objectAttrs.Name, objectAttrs.Generation)
	event.Generation = strconv.FormatInt(objectAttrs.Generation, 10)
	event.Metageneration = strconv.FormatInt(objectAttrs.Metageneration, 10)
	event.ContentType = objectAttrs.ContentType
	event.TimeCreated = objectAttrs.Created
	event.Updated = objectAttrs.Updated
	event.StorageClass = objectAttrs.StorageClass
	event.Size = strconv.FormatInt(objectAttrs.Size, 10)
	event.MediaLink = objectAttrs.MediaLink
	event.ContentEncoding = objectAttrs.ContentEncoding
	event.ContentDisposition = objectAttrs.ContentDisposition
	event.CacheControl = objectAttrs.CacheControl
	event.Etag = objectAttrs.Etag
	event.ResourceState = "exists"
	if objectAttrs.Metadata != nil {
		event.Metadata = make(map[string]interface{}, len(objectAttrs.Metadata))
		for key, value := range objectAttrs.Metadata {
			event.Metadata[key] = value
		}
	}
	return event
}
