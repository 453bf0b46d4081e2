package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_DMWithSeller(t *testing.T) {
	got := Link(Telegram{Seller: "charynhor", Mode: ModeDM}, "https://example.com", "Cart text")
	assert.True(t, strings.HasPrefix(got, "https://t.me/charynhor?text="), got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "Cart text", u.Query().Get("text"))
}

func TestLink_StripsAtPrefix(t *testing.T) {
	got := Link(Telegram{Seller: "@seller", Mode: ModeDM}, "", "x")
	assert.True(t, strings.HasPrefix(got, "https://t.me/seller?"), got)
}

func TestLink_SharePicker(t *testing.T) {
	got := Link(Telegram{Mode: ModeShare}, "https://shop.example/page", "Cart\nline two")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "t.me", u.Host)
	assert.Equal(t, "/share/url", u.Path)
	assert.Equal(t, "https://shop.example/page", u.Query().Get("url"))
	assert.Equal(t, "Cart\nline two", u.Query().Get("text"))
}

func TestLink_DMWithoutSellerFallsBackToPicker(t *testing.T) {
	got := Link(Telegram{Mode: ModeDM}, "https://example.com", "x")
	assert.Contains(t, got, "/share/url")
}

func TestOpenWith_PerPlatform(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	require.NoError(t, openWith("linux", "https://t.me/x", run))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"https://t.me/x"}, gotArgs)

	require.NoError(t, openWith("darwin", "https://t.me/x", run))
	assert.Equal(t, "open", gotName)

	require.NoError(t, openWith("windows", "https://t.me/x", run))
	assert.Equal(t, "rundll32", gotName)
}
