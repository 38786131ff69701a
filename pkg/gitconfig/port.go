package gitconfig

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/mharbulous/storysync/pkg/errors"
)

// Port abstracts local-scope git configuration access so the reconciler
// never touches process execution directly and tests can substitute a fake.
type Port interface {
	// Available reports whether the git executable can be located
	Available() bool

	// GetLocal reads a repository-local config key. The second return is
	// false when the key is unset.
	GetLocal(repo, key string) (string, bool, error)

	// SetLocal writes a repository-local config key
	SetLocal(repo, key, value string) error
}

// ExecPort implements Port by invoking the git binary
type ExecPort struct{}

// NewExecPort creates a Port backed by the git executable
func NewExecPort() *ExecPort {
	return &ExecPort{}
}

// Available reports whether git is on PATH
func (p *ExecPort) Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// GetLocal runs `git -C <repo> config --local --get <key>`
func (p *ExecPort) GetLocal(repo, key string) (string, bool, error) {
	cmd := exec.Command("git", "-C", repo, "config", "--local", "--get", key)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		// git exits 1 when the key is simply unset
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrGitConfig, "git config --get %s failed", key)
	}

	return strings.TrimSpace(out.String()), true, nil
}

// SetLocal runs `git -C <repo> config --local <key> <value>`
func (p *ExecPort) SetLocal(repo, key, value string) error {
	cmd := exec.Command("git", "-C", repo, "config", "--local", key, value)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrGitConfig, "git config %s=%s failed: %s",
			key, value, strings.TrimSpace(stderr.String()))
	}
	return nil
}
