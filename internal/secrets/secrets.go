package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Resolver reads API keys from Google Secret Manager so they never have to
// live in plaintext files on the host.
type Resolver struct {
	client  *secretmanager.Client
	project string
}

func NewResolver(ctx context.Context, project string) (*Resolver, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}

	return &Resolver{client: client, project: project}, nil
}

func (r *Resolver) Close() error {
	return r.client.Close()
}

// Fetch returns the latest version of the named secret.
func (r *Resolver) Fetch(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", r.project, name),
	}

	resp, err := r.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

// Lookup is Fetch with the error downgraded to a log line. Missing secrets
// come back as an empty string.
func (r *Resolver) Lookup(ctx context.Context, name string) string {
	value, err := r.Fetch(ctx, name)
	if err != nil {
		slog.Debug("Secret not resolved", "secret", name, "error", err)
		return ""
	}
	return value
}
