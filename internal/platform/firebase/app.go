package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrMissingProject is returned when no project id is configured.
var ErrMissingProject = errors.New("firebase project id is required")

// Config selects the Firebase project backing authentication and the
// listing, lead and favorite collections.
type Config struct {
	ProjectID string
	// CredentialsFile is a service account JSON path. Empty uses application
	// default credentials.
	CredentialsFile string
}

// Clients holds initialized Firebase clients.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// UsingEmulators reports whether the Firestore or Auth emulator hosts are set.
// Credentials are ignored by the SDK in that case.
func UsingEmulators() bool {
	return os.Getenv("FIRESTORE_EMULATOR_HOST") != "" || os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") != ""
}

func (c Config) options() ([]option.ClientOption, error) {
	if c.CredentialsFile == "" || UsingEmulators() {
		return nil, nil
	}
	creds, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// InitializeClients creates the Auth and Firestore clients for cfg.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProject
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	fc, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}

	return &Clients{Auth: ac, Firestore: fc}, nil
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
