package platform

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSFreeBSD = "freebsd"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	RunDLLCommand  = "rundll32"
	URLHandlerArg  = "url.dll,FileProtocolHandler"
)

// OpenInBrowser opens an http(s) link with the system's default browser
func OpenInBrowser(rawURL string) error {
	name, args, err := browserCommand(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// browserCommand builds the command that opens rawURL on goos
func browserCommand(goos, rawURL string) (string, []string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, fmt.Errorf("refusing to open non-web URL %q", rawURL)
	}

	link := u.String()
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{link}, nil
	case OSWindows:
		return RunDLLCommand, []string{URLHandlerArg, link}, nil
	case OSLinux, OSFreeBSD:
		return XDGOpenCommand, []string{link}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
