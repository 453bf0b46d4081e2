// Package imgurl resolves opaque product image references to displayable
// URLs: pass-through for absolute URLs and data URIs, width/format transform
// injection for Cloudinary, direct-view or proxy rewriting for Drive share
// links, and asset-base resolution for bare filenames.
package imgurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// DriveDirect rewrites Drive references to the public direct-view URL.
	DriveDirect = "direct"
	// DriveProxy routes Drive references through a configured proxy.
	DriveProxy = "proxy"
)

type Config struct {
	AssetBase string
	DriveMode string
	DriveURL  string
}

var (
	absoluteRe   = regexp.MustCompile(`(?i)^https?://`)
	dataURIRe    = regexp.MustCompile(`(?i)^data:`)
	cloudinaryRe = regexp.MustCompile(`(?i)^https?://res\.cloudinary\.com/`)
	uploadRe     = regexp.MustCompile(`(?i)^(https?://res\.cloudinary\.com/[^/]+/image/upload/)(.*)$`)

	driveQueryRe = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{20,})`)
	driveFileRe  = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]{20,})`)
	driveUcRe    = regexp.MustCompile(`/uc\?[^#?]*\bid=([a-zA-Z0-9_-]{20,})`)
	driveBareRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
)

// Resolve maps a raw image reference to a URL. Empty references resolve to
// the empty string; the display layer shows the placeholder gradient then.
func Resolve(cfg Config, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if cloudinaryRe.MatchString(ref) {
		// Returned as-is; Sized injects transforms at display time.
		return ref
	}
	if absoluteRe.MatchString(ref) || dataURIRe.MatchString(ref) {
		return ref
	}
	if id := DriveID(ref); id != "" {
		if cfg.DriveMode == DriveProxy && cfg.DriveURL != "" {
			return fmt.Sprintf("%s?img=%s", cfg.DriveURL, url.QueryEscape(id))
		}
		return fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", url.QueryEscape(id))
	}

	base := strings.TrimRight(cfg.AssetBase, "/")
	if base == "" {
		base = "./assets/img"
	}
	return base + "/" + strings.TrimLeft(ref, "/")
}

// DriveID extracts a Drive file id from a share link, an uc-style URL, or a
// bare id. Returns "" when the reference is not Drive-shaped.
func DriveID(s string) string {
	for _, re := range []*regexp.Regexp{driveQueryRe, driveFileRe, driveUcRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	if driveBareRe.MatchString(s) {
		return s
	}
	return ""
}

// IsCloudinary reports whether the URL is eligible for transform injection.
func IsCloudinary(u string) bool {
	return cloudinaryRe.MatchString(u)
}

// Sized injects f_auto,q_auto,w_<w> transforms into a Cloudinary upload URL.
// Existing transforms are kept after ours so ours apply first. Non-Cloudinary
// URLs are returned unchanged.
func Sized(u string, w int) string {
	m := uploadRe.FindStringSubmatch(u)
	if m == nil {
		return u
	}
	return fmt.Sprintf("%sf_auto,q_auto,w_%d/%s", m[1], w, m[2])
}

// SrcSet returns the standard responsive widths used by the grid.
func SrcSet(u string) []string {
	if !IsCloudinary(u) {
		return []string{u}
	}
	return []string{Sized(u, 320), Sized(u, 480), Sized(u, 640)}
}
