package store

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseStore talks to a Firebase Realtime Database. It satisfies Store;
// the underlying client is safe for concurrent use.
type FirebaseStore struct {
	client *db.Client
}

// OpenFirebase decodes the base64-encoded service-account credential, then
// initializes the app against databaseURL and opens the database client.
// Called once at startup; a bad credential or unreachable database fails fast.
func OpenFirebase(ctx context.Context, credentialsB64, databaseURL string) (*FirebaseStore, error) {
	cred, err := base64.StdEncoding.DecodeString(credentialsB64)
	if err != nil {
		return nil, fmt.Errorf("decode service account credential: %w", err)
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL},
		option.WithCredentialsJSON(cred))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("open realtime database: %w", err)
	}
	return &FirebaseStore{client: client}, nil
}

func (s *FirebaseStore) Get(ctx context.Context, path string, v any) error {
	return s.client.NewRef(path).Get(ctx, v)
}

func (s *FirebaseStore) Set(ctx context.Context, path string, v any) error {
	return s.client.NewRef(path).Set(ctx, v)
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]any) error {
	return s.client.NewRef(path).Update(ctx, fields)
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	return s.client.NewRef(path).Delete(ctx)
}

// Push allocates a new child key under path. No data is written until the
// caller sets a value at the returned key.
func (s *FirebaseStore) Push(ctx context.Context, path string) (string, error) {
	ref, err := s.client.NewRef(path).Push(ctx, nil)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}
