package util

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserCommands(t *testing.T) {
	url := "http://localhost:20262"

	assert.Equal(t, [][]string{{"open", url}}, browserCommands("darwin", url))

	win := browserCommands("windows", url)
	assert.Equal(t, "rundll32", win[0][0])
	assert.Equal(t, []string{"explorer", url}, win[1])

	linux := browserCommands("linux", url)
	assert.Equal(t, []string{"xdg-open", url}, linux[0])
	assert.Greater(t, len(linux), 1)
}

func TestOpenBrowser_FallsBack(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("single launcher on darwin")
	}
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var tried []string
	startCommand = func(name string, args ...string) error {
		tried = append(tried, name)
		if len(tried) < 2 {
			return errors.New("not found")
		}
		return nil
	}

	assert.NoError(t, OpenBrowser("http://localhost:1"))
	assert.Len(t, tried, 2)
}

func TestOpenBrowser_AllFail(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	startCommand = func(string, ...string) error { return errors.New("not found") }
	assert.Error(t, OpenBrowser("http://localhost:1"))
}
