package fileserver

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mybrain/journal/internal/config"
	"github.com/mybrain/journal/internal/domain"
)

// Config is fixed at process start.
type Config struct {
	Root string
	Host string
	Port string
}

// DefaultConfig serves the executable's directory on all interfaces, port 8000.
func DefaultConfig() (Config, error) {
	root, err := ExecutableDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Root: root,
		Host: config.DefaultHost,
		Port: config.DefaultPort,
	}, nil
}

// ExecutableDir returns the directory holding the running binary, with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

// Addr is the host:port the listener binds.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate checks the root directory and the port.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPort, c.Port)
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRootNotDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrRootNotDirectory, c.Root)
	}

	return nil
}
