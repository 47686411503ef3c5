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

package backfill

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/flutter-zaliczenie/bookshelf/utilities/erm"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/logging"

	"golang.org/x/sync/errgroup"
)

const microserviceName = "backfillbooks"

// Recorder decides if an object is a book and writes its record
type Recorder interface {
	Eligible(gcsEvent gcs.Event) (documentID string, ok bool, reason string)
	Record(ctx context.Context, eventID string, gcsEvent gcs.Event) (recorded bool, err error)
}

// ExistenceChecker tells if a document is already recorded
type ExistenceChecker interface {
	Exists(ctx context.Context, documentID string, retriesNumber int) (bool, error)
}

// Runner records a list of objects
type Runner struct {
	Recorder      Recorder
	Checker       ExistenceChecker
	Force         bool
	DryRun        bool
	RetriesNumber int
	WaitSec       time.Duration
	Workers       int
}

type outcome int

const (
	recorded outcome = iota
	ineligible
	existing
	dryRun
	failed
)

// Report counts the outcome per object
type Report struct {
	Listed     int
	Recorded   int
	Ineligible int
	Existing   int
	DryRun     int
	Failed     int
}

func (report Report) String() string {
	return fmt.Sprintf("listed %d recorded %d ineligible %d existing %d dryrun %d failed %d",
		report.Listed, report.Recorded, report.Ineligible, report.Existing, report.DryRun, report.Failed)
}

func (report *Report) add(o outcome) {
	switch o {
	case recorded:
		report.Recorded++
	case ineligible:
		report.Ineligible++
	case existing:
		report.Existing++
	case dryRun:
		report.DryRun++
	default:
		report.Failed++
	}
}

// Run processes the events with at most Workers in flight, one failed object does not stop the run
func (runner Runner) Run(ctx context.Context, events []gcs.Event) (report Report) {
	workers := runner.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	var mu sync.Mutex
	report.Listed = len(events)
	for _, event := range events {
		event := event
		g.Go(func() error {
			o := runner.process(ctx, event)
			mu.Lock()
			report.add(o)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return report
}

func (runner Runner) process(ctx context.Context, event gcs.Event) outcome {
	if ctx.Err() != nil {
		return failed
	}
	documentID, ok, reason := runner.Recorder.Eligible(event)
	if !ok {
		log.Println(logging.Entry{
			MicroserviceName: microserviceName,
			Severity:         "INFO",
			Message:          "ineligible",
			Description:      reason,
			ObjectName:       event.Name,
		})
		return ineligible
	}
	if !runner.Force {
		exists, err := runner.Checker.Exists(ctx, documentID, runner.RetriesNumber)
		if err != nil {
			log.Println(logging.Entry{
				MicroserviceName: microserviceName,
				Severity:         "ERROR",
				Message:          "exists_check_failed",
				Description:      err.Error(),
				ObjectName:       event.Name,
			})
			return failed
		}
		if exists {
			return existing
		}
	}
	if runner.DryRun {
		log.Println(logging.Entry{
			MicroserviceName: microserviceName,
			Severity:         "INFO",
			Message:          "dryrun",
			Description:      fmt.Sprintf("would record document %s", documentID),
			ObjectName:       event.Name,
		})
		return dryRun
	}
	if err := runner.record(ctx, event); err != nil {
		log.Println(logging.Entry{
			MicroserviceName: microserviceName,
			Severity:         "ERROR",
			Message:          "record_failed",
			Description:      err.Error(),
			ObjectName:       event.Name,
		})
		return failed
	}
	return recorded
}

// record retries transient errors up to RetriesNumber attempts
func (runner Runner) record(ctx context.Context, event gcs.Event) (err error) {
	retriesNumber := runner.RetriesNumber
	if retriesNumber < 1 {
		retriesNumber = 1
	}
	for i := 0; i < retriesNumber; i++ {
		_, err = runner.Recorder.Record(ctx, event.ID, event)
		if err == nil {
			return nil
		}
		if erm.IsNotTransientElseWait(err, runner.WaitSec) {
			return err
		}
	}
	return fmt.Errorf("giving up after %d attempts %w", retriesNumber, err)
}
