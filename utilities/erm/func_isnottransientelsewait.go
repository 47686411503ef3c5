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

package erm

import (
	"log"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var transientCodes = []codes.Code{
	codes.Aborted,
	codes.DeadlineExceeded,
	codes.Internal,
	codes.ResourceExhausted,
	codes.Unavailable,
}

var transientHTTPStatus = []string{"500", "502", "503", "504"}

// IsTransient reports gRPC transient status codes, firestore, and 5xx REST errors, storage
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	// status.Code does not unwrap
	code := status.Code(unwrapAll(err))
	for _, transientCode := range transientCodes {
		if code == transientCode {
			return true
		}
	}
	errorMessage := err.Error()
	for _, transientError := range transientHTTPStatus {
		if strings.Contains(errorMessage, transientError) {
			return true
		}
	}
	return false
}

// IsNotTransientElseWait check is the error is transient and wait if it is
func IsNotTransientElseWait(err error, waitSec time.Duration) (isNotTransient bool) {
	if !IsTransient(err) {
		return true
	}
	log.Printf("Transient error, wait %d sec and retry %v", waitSec, err)
	time.Sleep(waitSec * time.Second)
	return false
}

func unwrapAll(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := unwrapper.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}
