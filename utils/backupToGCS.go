package utils

import (
	"context"
	"errors"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
// Prefer ADC (GOOGLE_APPLICATION_CREDENTIALS); explicit JSON can be supplied
// through GCS_CREDENTIALS_JSON for local use.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return storage.NewClient(ctx)
}

// UploadBackupToGCS archives a backup JSON document in the configured
// bucket. Archival is optional: callers treat a missing GCS_BUCKET as "not
// configured", not as a failure of the backup itself.
func UploadBackupToGCS(ctx context.Context, objectName string, data []byte) error {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return errors.New("GCS_BUCKET is required")
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "application/json"
	if _, err := wc.Write(data); err != nil {
		return err
	}
	return wc.Close()
}

// IsGCSConfigured reports whether backup archival has a destination bucket.
func IsGCSConfigured() bool {
	return strings.TrimSpace(os.Getenv("GCS_BUCKET")) != ""
}
