package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Credentials are the username and password typed in at first login.
type Credentials struct {
	Username string
	Password string
}

// Prompter collects credentials from the user.
type Prompter interface {
	PromptCredentials(ctx context.Context) (Credentials, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context) (Credentials, error)

// PromptCredentials calls f.
func (f PrompterFunc) PromptCredentials(ctx context.Context) (Credentials, error) {
	return f(ctx)
}

// ReaderPrompter reads a username line then a password line. It is the
// fallback when stdin is not a terminal (piped input), so there is no echo to
// suppress.
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer
}

// PromptCredentials reads both values, trimming the trailing newline.
func (p ReaderPrompter) PromptCredentials(ctx context.Context) (Credentials, error) {
	reader := bufio.NewReader(p.In)

	username, err := p.readLine(reader, "username")
	if err != nil {
		return Credentials{}, err
	}
	password, err := p.readLine(reader, "password")
	if err != nil {
		return Credentials{}, err
	}
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: password}, nil
}

func (p ReaderPrompter) readLine(reader *bufio.Reader, label string) (string, error) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, "%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	value := strings.TrimRight(line, "\r\n")
	if value == "" {
		return "", fmt.Errorf("%s must not be empty", label)
	}
	return value, nil
}
