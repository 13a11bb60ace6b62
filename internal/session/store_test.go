package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ogs-notify/ogs-notify/internal/ogs"
)

// fakeOGS accepts me/secret and serves /api/v1/me to holders of its session cookie.
func fakeOGS(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/api/v0/login":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"password":"secret"`) {
				http.Error(w, "bad credentials", http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s3ss10n", Path: "/", MaxAge: 3600})
			w.WriteHeader(http.StatusOK)
		case "/api/v1/me":
			if c, err := r.Cookie("sessionid"); err != nil || c.Value != "s3ss10n" {
				http.Error(w, "no session", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id": 42, "username": "me"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func staticPrompter(username, password string, calls *int) Prompter {
	return PrompterFunc(func(ctx context.Context) (Credentials, error) {
		*calls++
		return Credentials{Username: username, Password: password}, nil
	})
}

func TestAcquire_LoginPersistsAndReloads(t *testing.T) {
	var hits int32
	server := fakeOGS(t, &hits)
	path := filepath.Join(t.TempDir(), "nested", "cookies.json")
	ctx := context.Background()

	prompts := 0
	client, err := Acquire(ctx, path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "secret", &prompts)})
	if err != nil {
		t.Fatalf("Acquire (first run) error: %v", err)
	}
	if prompts != 1 {
		t.Fatalf("prompted %d times on first run, want 1", prompts)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if _, err := client.CurrentUser(ctx); err != nil {
		t.Fatalf("CurrentUser after login error: %v", err)
	}

	// A fresh acquisition must reuse the saved jar without prompting.
	reloaded, err := Acquire(ctx, path, Options{BaseURL: server.URL, Prompter: staticPrompter("x", "y", &prompts)})
	if err != nil {
		t.Fatalf("Acquire (second run) error: %v", err)
	}
	if prompts != 1 {
		t.Fatalf("second run prompted for credentials")
	}
	user, err := reloaded.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser with reloaded session error: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("CurrentUser = %+v, want id=42", user)
	}
}

func TestAcquire_LoginRejectedWritesNothing(t *testing.T) {
	var hits int32
	server := fakeOGS(t, &hits)
	path := filepath.Join(t.TempDir(), "cookies.json")

	prompts := 0
	_, err := Acquire(context.Background(), path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "wrong", &prompts)})
	if !errors.Is(err, ogs.ErrAuth) {
		t.Fatalf("Acquire error = %v, want ErrAuth", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("session file exists after failed login (stat err = %v)", statErr)
	}
}

func TestAcquire_CorruptSessionFailsFast(t *testing.T) {
	var hits int32
	server := fakeOGS(t, &hits)
	path := filepath.Join(t.TempDir(), "cookies.json")

	for _, content := range []string{"{not json", "", `{"foo": 1}`, `"hello"`, "42", "[1, 2]"} {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		prompts := 0
		_, err := Acquire(context.Background(), path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "secret", &prompts)})
		if !errors.Is(err, ErrCorruptSession) {
			t.Fatalf("Acquire(%q) error = %v, want ErrCorruptSession", content, err)
		}
		if prompts != 0 {
			t.Fatalf("Acquire(%q) prompted for credentials", content)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("corrupt session made %d network calls, want 0", n)
	}
}

func TestAcquire_UnreadableSessionIsIOError(t *testing.T) {
	// A directory where the file should be cannot be read as a file.
	path := t.TempDir()

	_, err := Acquire(context.Background(), path, Options{BaseURL: "http://127.0.0.1:1"})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Acquire error = %v, want ErrIO", err)
	}
}

func TestAcquire_EmptyJarAccepted(t *testing.T) {
	var hits int32
	server := fakeOGS(t, &hits)
	path := filepath.Join(t.TempDir(), "cookies.json")

	for _, content := range []string{"null", "[]"} {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Acquire(context.Background(), path, Options{BaseURL: server.URL}); err != nil {
			t.Fatalf("Acquire(%q) error: %v", content, err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("loading a saved jar made %d network calls, want 0", n)
	}
}

func TestAcquire_ReadOnlySessionDirIsIOError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.json")
	if err := os.WriteFile(path, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	_, err := Acquire(context.Background(), path, Options{BaseURL: "http://127.0.0.1:1"})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Acquire error = %v, want ErrIO", err)
	}
	if errors.Is(err, ErrCorruptSession) {
		t.Fatalf("Acquire error = %v, must not be ErrCorruptSession", err)
	}
}

func TestRelogin(t *testing.T) {
	var hits int32
	server := fakeOGS(t, &hits)
	path := filepath.Join(t.TempDir(), "cookies.json")
	ctx := context.Background()

	prompts := 0
	if _, err := Acquire(ctx, path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "secret", &prompts)}); err != nil {
		t.Fatalf("initial login error: %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// A rejected login leaves the working session in place.
	_, err = Relogin(ctx, path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "wrong", &prompts)})
	if !errors.Is(err, ogs.ErrAuth) {
		t.Fatalf("Relogin with bad password error = %v, want ErrAuth", err)
	}
	kept, err := os.ReadFile(path)
	if err != nil || string(kept) != string(saved) {
		t.Fatalf("session changed after rejected login (err = %v)", err)
	}
	if _, err := os.Stat(path + ".new"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pending session left behind (stat err = %v)", err)
	}

	if _, err := Relogin(ctx, path, Options{BaseURL: server.URL, Prompter: staticPrompter("me", "secret", &prompts)}); err != nil {
		t.Fatalf("Relogin error: %v", err)
	}
	reloaded, err := Acquire(ctx, path, Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Acquire after Relogin error: %v", err)
	}
	if user, err := reloaded.CurrentUser(ctx); err != nil || user.ID != 42 {
		t.Fatalf("CurrentUser after Relogin = %+v, %v", user, err)
	}
}

func TestAcquire_NoPrompter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	_, err := Acquire(context.Background(), path, Options{BaseURL: "http://127.0.0.1:1"})
	if !errors.Is(err, ogs.ErrAuth) {
		t.Fatalf("Acquire error = %v, want ErrAuth", err)
	}
}

func TestForget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(path, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Forget(path); err != nil {
		t.Fatalf("Forget error: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("session file still present")
	}
	if err := Forget(path); err != nil {
		t.Fatalf("Forget on missing file error: %v", err)
	}
}

func TestReaderPrompter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Credentials
		wantErr bool
	}{
		{"two lines", "me\nsecret\n", Credentials{"me", "secret"}, false},
		{"crlf", "me\r\nsecret\r\n", Credentials{"me", "secret"}, false},
		{"no trailing newline", "me\nsecret", Credentials{"me", "secret"}, false},
		{"missing password", "me\n", Credentials{}, true},
		{"empty username", "\nsecret\n", Credentials{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := ReaderPrompter{In: strings.NewReader(tt.input), Out: &out}
			got, err := p.PromptCredentials(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("PromptCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PromptCredentials() = %+v, want %+v", got, tt.want)
			}
			if !tt.wantErr && !strings.Contains(out.String(), "password: ") {
				t.Errorf("prompt output %q lacks password label", out.String())
			}
		})
	}
}
