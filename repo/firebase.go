package repo

import (
	"context"
	"fmt"
	"os"

	"ProposalBot/model"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseConnector stores conversation sessions in the Firebase Realtime
// Database under sessions/<id>.
type FirebaseConnector struct {
	app    *firebase.App
	client *db.Client
}

// NewFirebaseConnector creates a new Firebase connector
func NewFirebaseConnector(ctx context.Context, serviceAccountKeyPath string, databaseURL string) (*FirebaseConnector, error) {
	// Load the service account key file
	opt := option.WithCredentialsFile(serviceAccountKeyPath)

	// Initialize the Firebase app
	config := &firebase.Config{
		DatabaseURL: databaseURL,
	}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	// Get a database client
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}

	return &FirebaseConnector{
		app:    app,
		client: client,
	}, nil
}

// Get reads a session from Firebase by its ID
func (fc *FirebaseConnector) Get(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	ref := fc.client.NewRef("sessions").Child(sessionID)
	var state model.ConversationState
	err := ref.Get(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("error reading session: %w", err)
	}
	// A missing ref unmarshals to the zero value rather than erroring.
	if state.CurrentStep == "" {
		return nil, model.ErrSessionNotFound
	}
	return &state, nil
}

// Set writes a session to Firebase under its ID
func (fc *FirebaseConnector) Set(ctx context.Context, sessionID string, state *model.ConversationState) error {
	ref := fc.client.NewRef("sessions").Child(sessionID)
	err := ref.Set(ctx, state)
	if err != nil {
		return fmt.Errorf("error writing session: %w", err)
	}
	return nil
}

// Delete removes a session from Firebase by its ID
func (fc *FirebaseConnector) Delete(ctx context.Context, sessionID string) error {
	ref := fc.client.NewRef("sessions").Child(sessionID)
	err := ref.Delete(ctx)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// InitializeFirebase initializes the Firebase connector from the environment
func InitializeFirebase(ctx context.Context) (*FirebaseConnector, error) {
	// Get the service account key path from environment variable
	serviceAccountKeyPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH")
	if serviceAccountKeyPath == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH environment variable not set")
	}

	// Get the database URL from environment variable
	databaseURL := os.Getenv("FIREBASE_DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL environment variable not set")
	}

	// Create a new Firebase connector
	firebaseConnector, err := NewFirebaseConnector(ctx, serviceAccountKeyPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating Firebase connector: %w", err)
	}

	return firebaseConnector, nil
}
