// Package open hands a resolved URL to the desktop's default handler or to a named player.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Start launches the handler for rawURL and returns without waiting for it.
// An empty app means the system default.
func Start(rawURL, app string) error {
	cmd, err := Command(rawURL, app, runtime.GOOS)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the process that opens rawURL on goos. Only http and https URLs are accepted.
func Command(rawURL, app, goos string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	if app != "" {
		return withApp(rawURL, app, goos)
	}

	switch goos {
	case "windows":
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", rawURL), nil
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux":
		return exec.Command("xdg-open", rawURL), nil
	case "android":
		return exec.Command("termux-open", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

func withApp(rawURL, app, goos string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		// start treats & as a command separator.
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(rawURL, "&", "^&")), nil
	case "darwin":
		return exec.Command("open", "-a", app, rawURL), nil
	case "linux", "android":
		return exec.Command(app, rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
