// README: Firebase Admin SDK initialisation for the shared Realtime Database tree.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"bestellapp/internal/config"
)

// NewRTDB initialises the Firebase Admin SDK and returns the Realtime
// Database client all clients of the system share. If no DatabaseURL is
// configured it is derived from the project ID using the default region.
func NewRTDB(ctx context.Context, cfg config.FirebaseConfig) (*db.Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("https://%s-default-rtdb.europe-west1.firebasedatabase.app", cfg.ProjectID)
	}

	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: databaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase RTDB client: %w", err)
	}
	return client, nil
}
