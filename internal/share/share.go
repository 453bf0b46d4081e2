// Package share sends the cart summary out of the app: a Telegram deep link
// to the seller or the generic share picker, and a best-effort clipboard
// copy with a manual fallback when the clipboard is unavailable.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

const (
	// ModeDM opens a direct conversation with the seller.
	ModeDM = "dm"
	// ModeShare opens the generic share picker.
	ModeShare = "share"
)

type Telegram struct {
	Seller string
	Mode   string
}

// Link builds the t.me deep link carrying the cart text. DM mode requires a
// configured seller handle; otherwise the share picker is used with the
// page URL attached.
func Link(tg Telegram, pageURL, text string) string {
	seller := strings.TrimSpace(strings.TrimPrefix(tg.Seller, "@"))
	if tg.Mode == ModeDM && seller != "" {
		return fmt.Sprintf("https://t.me/%s?text=%s", seller, url.QueryEscape(text))
	}
	return fmt.Sprintf("https://t.me/share/url?url=%s&text=%s",
		url.QueryEscape(pageURL), url.QueryEscape(text))
}

// Copy writes text to the system clipboard. On failure the caller should
// surface the text itself so the user can select it manually.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}

// OpenBrowser launches the platform browser on the given URL in a new
// browsing context.
func OpenBrowser(rawURL string) error {
	return openWith(runtime.GOOS, rawURL, execRun)
}

func openWith(goos, rawURL string, run func(name string, args ...string) error) error {
	switch goos {
	case "darwin":
		return run("open", rawURL)
	case "windows":
		return run("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return run("xdg-open", rawURL)
	}
}

func execRun(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
