// Package session acquires and persists the OGS login session (a cookie jar).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	cookiejar "github.com/juju/persistent-cookiejar"
	"golang.org/x/net/publicsuffix"

	"github.com/ogs-notify/ogs-notify/internal/ogs"
)

var (
	// ErrIO means the session file could not be read or written.
	ErrIO = errors.New("session file access failed")

	// ErrCorruptSession means the session file exists but isn't a cookie jar.
	ErrCorruptSession = errors.New("session file is corrupt")
)

// Options configures Acquire.
type Options struct {
	// BaseURL of the OGS server. Empty means ogs.DefaultBaseURL.
	BaseURL string

	// Prompter is asked for credentials when there is no session file yet.
	Prompter Prompter
}

// Acquire returns a client backed by the session persisted at path.
//
// Without a session file it prompts for credentials, logs in, and writes the
// resulting cookie jar to path. Nothing is written if the login fails. With a
// session file it loads the jar without touching the network.
func Acquire(ctx context.Context, path string, opts Options) (*ogs.Client, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return login(ctx, path, opts)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := checkJarShape(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v (run `ogs-notify login` to replace it)", ErrCorruptSession, path, err)
	}

	// The shape is already checked, so a failure here is the lock file or the read.
	jar, err := openJar(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	log.Printf("[session] Loaded session from %s", path)
	return ogs.NewClient(opts.BaseURL, jar)
}

// Relogin prompts for credentials and logs in without touching the session at
// path until the login succeeds; only then is the new jar moved over it. The
// returned client is only good for the current process.
func Relogin(ctx context.Context, path string, opts Options) (*ogs.Client, error) {
	pending := path + ".new"
	if err := Forget(pending); err != nil {
		return nil, err
	}
	defer os.Remove(pending + ".lock")

	client, err := login(ctx, pending, opts)
	if err != nil {
		return nil, err
	}
	if err := os.Rename(pending, path); err != nil {
		_ = Forget(pending)
		return nil, fmt.Errorf("%w: failed to replace %s: %v", ErrIO, path, err)
	}
	return client, nil
}

// Forget deletes the session file. A missing file is not an error.
func Forget(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func login(ctx context.Context, path string, opts Options) (*ogs.Client, error) {
	if opts.Prompter == nil {
		return nil, fmt.Errorf("%w: no session at %s and no way to prompt for credentials", ogs.ErrAuth, path)
	}

	creds, err := opts.Prompter.PromptCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	jar, err := openJar(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	client, err := ogs.NewClient(opts.BaseURL, jar)
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx, creds.Username, creds.Password); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory %s: %v", ErrIO, dir, err)
	}
	if err := jar.Save(); err != nil {
		return nil, fmt.Errorf("%w: failed to save session to %s: %v", ErrIO, path, err)
	}

	log.Printf("[session] Logged in as %s, session saved to %s", creds.Username, path)
	return client, nil
}

// checkJarShape accepts what Jar.Save writes: a JSON array of cookie objects,
// or null for a jar with no persistent cookies. The jar itself silently drops
// anything else, which would turn a broken file into an empty session.
func checkJarShape(data []byte) error {
	if len(data) == 0 {
		return errors.New("file is empty")
	}
	var cookies []map[string]json.RawMessage
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("not a cookie list: %v", err)
	}
	return nil
}

func openJar(path string) (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{
		Filename:         path,
		PublicSuffixList: publicsuffix.List,
	})
}
