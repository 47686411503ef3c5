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

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/flutter-zaliczenie/bookshelf/services/onbookuploaded"
	"github.com/flutter-zaliczenie/bookshelf/utilities/backfill"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gcs"
	"github.com/flutter-zaliczenie/bookshelf/utilities/gfs"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

type rootOptions struct {
	bucket          string
	projectID       string
	settingsPath    string
	credentialsPath string
	force           bool
	dryRun          bool
	retriesNumber   int
	workers         int
}

func newRootCommand() *cobra.Command {
	var options rootOptions

	rootCmd := &cobra.Command{
		Use:           "backfillbooks",
		Short:         "Record the books already in the bucket",
		Long:          "List the objects under the books prefix and write the FireStore record of each, as the upload trigger does.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(cmd, options)
		},
	}

	rootCmd.Flags().StringVar(&options.bucket, "bucket", "", "Storage bucket holding the books")
	rootCmd.Flags().StringVar(&options.projectID, "project", "", "FireStore project ID, overrides the settings file")
	rootCmd.Flags().StringVar(&options.settingsPath, "settings", onbookuploaded.SettingsFileName, "Settings file path, defaults apply when it does not exist")
	rootCmd.Flags().StringVar(&options.credentialsPath, "credentials", "", "Service account key file, application default credentials when empty")
	rootCmd.Flags().BoolVar(&options.force, "force", false, "Rewrite books already recorded")
	rootCmd.Flags().BoolVar(&options.dryRun, "dry-run", false, "Report what would be recorded without writing")
	rootCmd.Flags().IntVar(&options.retriesNumber, "retries", 5, "Attempts per book on transient errors")
	rootCmd.Flags().IntVar(&options.workers, "workers", 4, "Books recorded in parallel")
	_ = rootCmd.MarkFlagRequired("bucket")

	return rootCmd
}

func runBackfill(cmd *cobra.Command, options rootOptions) error {
	log.SetFlags(0)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, _, err := onbookuploaded.LoadSettings(options.settingsPath)
	if err != nil {
		return err
	}
	if options.projectID != "" {
		settings.FireStore.ProjectID = options.projectID
	}
	if settings.FireStore.ProjectID == "" {
		return fmt.Errorf("--project is required when the settings do not set fireStore projectID")
	}

	var clientOptions []option.ClientOption
	if options.credentialsPath != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(options.credentialsPath))
	}
	storageClient, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return fmt.Errorf("storage.NewClient %w", err)
	}
	defer storageClient.Close()
	firestoreClient, err := firestore.NewClient(ctx, settings.FireStore.ProjectID, clientOptions...)
	if err != nil {
		return fmt.Errorf("firestore.NewClient %w", err)
	}
	defer firestoreClient.Close()

	store := gfs.DocStore{
		Client:       firestoreClient,
		CollectionID: settings.FireStore.CollectionID,
	}
	global := onbookuploaded.NewGlobal(settings,
		store,
		gcs.NewDownloadURLBuilder(os.LookupEnv, settings.GCS.ProductionEndpoint))

	events, err := gcs.ListObjects(ctx, storageClient.Bucket(options.bucket), settings.Books.Prefix)
	if err != nil {
		return fmt.Errorf("gcs.ListObjects gs://%s/%s %w", options.bucket, settings.Books.Prefix, err)
	}

	runner := backfill.Runner{
		Recorder:      global,
		Checker:       store,
		Force:         options.force,
		DryRun:        options.dryRun,
		RetriesNumber: options.retriesNumber,
		WaitSec:       1,
		Workers:       options.workers,
	}
	report := runner.Run(ctx, events)
	fmt.Fprintln(cmd.OutOrStdout(), report)
	if err := ctx.Err(); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d books failed to record", report.Failed)
	}
	return nil
}
