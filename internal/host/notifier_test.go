package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Not parallel: swaps the package-level notify hook.
func TestDesktopNotifier(t *testing.T) {
	var calls []string
	orig := notify
	notify = func(title, message string, _ any) error {
		calls = append(calls, title+": "+message)
		return nil
	}
	t.Cleanup(func() { notify = orig })

	require.NoError(t, DesktopNotifier{Enabled: false}.Notify("SlangClip", "hidden"))
	require.NoError(t, DesktopNotifier{Enabled: true}.Notify("SlangClip", "shown"))
	require.Equal(t, []string{"SlangClip: shown"}, calls)
}
