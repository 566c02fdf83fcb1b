package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRunPluginNotFound(t *testing.T) {
	oldPath := os.Getenv("PATH")
	os.Setenv("PATH", t.TempDir())
	t.Cleanup(func() { os.Setenv("PATH", oldPath) })

	_, err := RunPlugin("definitely-not-a-real-plugin", nil, PluginContext{})
	if !errors.Is(err, ErrPluginNotFound) {
		t.Fatalf("RunPlugin error = %v, want ErrPluginNotFound", err)
	}
}

func TestRunPluginExecutesAndPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugin fixture requires a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "twig-hello")
	contents := "#!/bin/sh\nif [ \"$TWIG_VERSION\" != \"1.2.3\" ]; then exit 9; fi\nexit 3\n"
	if err := os.WriteFile(script, []byte(contents), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldPath := os.Getenv("PATH")
	os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath)
	t.Cleanup(func() { os.Setenv("PATH", oldPath) })

	code, err := RunPlugin("hello", nil, PluginContext{Version: "1.2.3"})
	if err != nil {
		t.Fatalf("RunPlugin: %v", err)
	}
	if code != 3 {
		t.Fatalf("RunPlugin exit code = %d, want 3", code)
	}
}
