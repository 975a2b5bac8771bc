package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/fsutil"
)

// ErrConfigExists is returned when init would overwrite a config file
// without permission.
var ErrConfigExists = errors.New("config file already exists")

// ErrNoBackup is returned when there is no backup to restore.
var ErrNoBackup = errors.New("no config backup")

// InitOptions controls WriteTemplate.
type InitOptions struct {
	// Path is the file to write. Defaults to the first ProjectConfigFiles name.
	Path string

	// Full writes every setting with its default instead of a commented
	// skeleton.
	Full bool

	// Force overwrites an existing file without asking.
	Force bool

	// NonInteractive never prompts; an existing file is an error unless
	// Force is set.
	NonInteractive bool

	// In and Out carry the overwrite prompt. They default to stdin/stdout.
	In  io.Reader
	Out io.Writer
}

// InitResult describes what WriteTemplate did.
type InitResult struct {
	Path     string
	BackedUp bool
}

// WriteTemplate writes a starter configuration file. An existing file is
// backed up to a sidecar before being replaced.
func WriteTemplate(ctx context.Context, opts InitOptions) (*InitResult, error) {
	path := opts.Path
	if path == "" {
		path = ProjectConfigFiles[0]
	}

	result := &InitResult{Path: path}

	if fileExists(path) {
		if !opts.Force {
			confirmed, err := confirmOverwrite(path, opts)
			if err != nil {
				return nil, err
			}
			if !confirmed {
				return nil, fmt.Errorf("%w: %s", ErrConfigExists, path)
			}
		}

		backedUp, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("back up %s: %w", path, err)
		}
		result.BackedUp = backedUp
	}

	if err := fsutil.WriteAtomic(ctx, path, config.GenerateTemplate(opts.Full), 0); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}

	return result, nil
}

// RestoreTemplate puts back the file that the last WriteTemplate replaced
// and removes its backup.
func RestoreTemplate(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = ProjectConfigFiles[0]
	}

	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil {
		return "", fmt.Errorf("restore %s: %w", path, err)
	}
	if !restored {
		return "", fmt.Errorf("%w: %s", ErrNoBackup, fsutil.BackupPath(path))
	}
	return path, nil
}

func confirmOverwrite(path string, opts InitOptions) (bool, error) {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if opts.NonInteractive || (opts.In == nil && !isInteractive()) {
		return false, nil
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
