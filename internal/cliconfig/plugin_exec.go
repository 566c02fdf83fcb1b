package cliconfig

import (
	"errors"
	"os"
	"os/exec"
)

// ErrPluginNotFound is returned by RunPlugin when no twig-<name> executable
// is present on PATH.
var ErrPluginNotFound = errors.New("plugin not found on PATH")

// RunPlugin execs "twig-<name>" with args, inheriting stdio and appending
// ctx's environment variables to the plugin's environment. Its exit code
// becomes the return value, per the plugin host contract. Returns
// ErrPluginNotFound if no such executable exists on PATH.
func RunPlugin(name string, args []string, ctx PluginContext) (int, error) {
	binary, err := exec.LookPath("twig-" + name)
	if err != nil {
		return 0, ErrPluginNotFound
	}

	cmd := exec.Command(binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), ctx.Env()...)

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
