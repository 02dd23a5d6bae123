package db

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"planhub-backend-go/internal/config"
)

// NewFirestoreClient initializes the Firebase Admin SDK and returns its
// Firestore client. Credentials are resolved from a service-account file
// path, a base64-encoded service-account JSON blob, or Application Default
// Credentials, in that order. The caller owns the client and must Close it.
func NewFirestoreClient(ctx context.Context, appConfig *config.Config) (*firestore.Client, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("NewFirestoreClient: appConfig cannot be nil")
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decodedJSON))
	default:
		// Application Default Credentials; common on GCE, GKE and Cloud Run.
	}

	var firebaseAppConfig *firebase.Config
	if appConfig.FirebaseProjectID != "" {
		firebaseAppConfig = &firebase.Config{ProjectID: appConfig.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, firebaseAppConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}
	return client, nil
}
