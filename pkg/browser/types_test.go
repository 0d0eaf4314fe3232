package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLaunchOptions(t *testing.T) {
	t.Run("headless by default", func(t *testing.T) {
		out := buildLaunchOptions(LaunchOptions{})
		require.NotNil(t, out.Headless)
		assert.True(t, *out.Headless)
		assert.Nil(t, out.ExecutablePath)
	})

	t.Run("headed", func(t *testing.T) {
		out := buildLaunchOptions(LaunchOptions{Headed: true})
		require.NotNil(t, out.Headless)
		assert.False(t, *out.Headless)
	})

	t.Run("executable path", func(t *testing.T) {
		out := buildLaunchOptions(LaunchOptions{ExecutablePath: "/usr/bin/chromium"})
		require.NotNil(t, out.ExecutablePath)
		assert.Equal(t, "/usr/bin/chromium", *out.ExecutablePath)
	})
}

func TestBuildContextOptions(t *testing.T) {
	t.Run("default viewport", func(t *testing.T) {
		out := buildContextOptions(LaunchOptions{})
		require.NotNil(t, out.Viewport)
		assert.Equal(t, DefaultViewportWidth, out.Viewport.Width)
		assert.Equal(t, DefaultViewportHeight, out.Viewport.Height)
		assert.Nil(t, out.ExtraHttpHeaders)
		assert.Nil(t, out.StorageStatePath)
	})

	t.Run("custom viewport", func(t *testing.T) {
		out := buildContextOptions(LaunchOptions{Viewport: &Viewport{Width: 800, Height: 600}})
		require.NotNil(t, out.Viewport)
		assert.Equal(t, 800, out.Viewport.Width)
		assert.Equal(t, 600, out.Viewport.Height)
	})

	t.Run("headers", func(t *testing.T) {
		headers := map[string]string{"Authorization": "Bearer token"}
		out := buildContextOptions(LaunchOptions{Headers: headers})
		assert.Equal(t, headers, out.ExtraHttpHeaders)
	})

	t.Run("storage state", func(t *testing.T) {
		out := buildContextOptions(LaunchOptions{StorageStatePath: "/tmp/state.json"})
		require.NotNil(t, out.StorageStatePath)
		assert.Equal(t, "/tmp/state.json", *out.StorageStatePath)
	})
}

func TestLaunchOptionsTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, LaunchOptions{}.timeout())
	assert.Equal(t, 5000.0, LaunchOptions{Timeout: 5000}.timeout())
}
