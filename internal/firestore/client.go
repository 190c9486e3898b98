// Package firestore persists queries in a Cloud Firestore collection,
// the system of record the bot shares with the rest of the community
// tooling.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Client wraps a Firestore connection
type Client struct {
	*fs.Client
}

// New connects to Firestore using a service account credentials file
func New(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	client, err := fs.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to firestore: %w", err)
	}
	return &Client{client}, nil
}
