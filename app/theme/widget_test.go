package theme_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longvox/themer/app/enum"
	"github.com/longvox/themer/app/theme"
	"github.com/longvox/themer/app/theme/mocks"
)

func TestWidgetTheme_Mapping(t *testing.T) {
	tests := []struct {
		theme    enum.Theme
		expected string
	}{
		{enum.ThemeLight, "light"},
		{enum.ThemeDark, "dark_dimmed"},
	}

	for _, tc := range tests {
		t.Run(tc.theme.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, theme.WidgetTheme(tc.theme))
			msg := theme.NewWidgetMessage(tc.theme)
			assert.Equal(t, tc.expected, msg.Giscus.SetConfig.Theme)
		})
	}
}

func TestNotifier_DeliversImmediately(t *testing.T) {
	frame := &mocks.FrameMock{PostFunc: func(theme.WidgetMessage) error { return nil }}
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) { return frame, true }}
	n := theme.NewNotifier(loc, 5*time.Millisecond, 50*time.Millisecond)
	defer n.Close()

	n.Notify(enum.ThemeDark)

	require.Len(t, frame.PostCalls(), 1)
	notified, ok := n.Notified()
	assert.True(t, ok)
	assert.Equal(t, enum.ThemeDark, notified)
}

func TestNotifier_RetriesUntilFrameAppears(t *testing.T) {
	frame := &mocks.FrameMock{PostFunc: func(theme.WidgetMessage) error { return nil }}
	var lookups atomic.Int32
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) {
		// frame mounts on the third lookup, mimicking async widget bootstrap
		if lookups.Add(1) < 3 {
			return nil, false
		}
		return frame, true
	}}
	n := theme.NewNotifier(loc, 5*time.Millisecond, time.Second)
	defer n.Close()

	n.Notify(enum.ThemeDark)

	require.Eventually(t, func() bool { return len(frame.PostCalls()) == 1 },
		time.Second, 2*time.Millisecond)

	// delivered exactly once, retries stop after delivery
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, frame.PostCalls(), 1)
	assert.Equal(t, "dark_dimmed", frame.PostCalls()[0].Msg.Giscus.SetConfig.Theme)
}

func TestNotifier_GivesUpAfterMaxWait(t *testing.T) {
	var lookups atomic.Int32
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) {
		lookups.Add(1)
		return nil, false
	}}
	n := theme.NewNotifier(loc, 5*time.Millisecond, 30*time.Millisecond)
	defer n.Close()

	n.Notify(enum.ThemeDark)

	// the retry loop must stop on its own once the budget runs out
	time.Sleep(100 * time.Millisecond)
	after := lookups.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, lookups.Load(), "no lookups after the retry budget")

	_, ok := n.Notified()
	assert.False(t, ok)
}

func TestNotifier_DuplicateNotifySkipped(t *testing.T) {
	frame := &mocks.FrameMock{PostFunc: func(theme.WidgetMessage) error { return nil }}
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) { return frame, true }}
	n := theme.NewNotifier(loc, 5*time.Millisecond, 50*time.Millisecond)
	defer n.Close()

	n.Notify(enum.ThemeDark)
	n.Notify(enum.ThemeDark)

	assert.Len(t, frame.PostCalls(), 1)
}

func TestNotifier_NewThemeCancelsPendingRetry(t *testing.T) {
	frame := &mocks.FrameMock{PostFunc: func(theme.WidgetMessage) error { return nil }}
	var mounted atomic.Bool
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) {
		if !mounted.Load() {
			return nil, false
		}
		return frame, true
	}}
	n := theme.NewNotifier(loc, 5*time.Millisecond, time.Second)
	defer n.Close()

	n.Notify(enum.ThemeDark) // pending, frame not mounted
	n.Notify(enum.ThemeLight)
	mounted.Store(true)

	require.Eventually(t, func() bool { return len(frame.PostCalls()) >= 1 },
		time.Second, 2*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	calls := frame.PostCalls()
	require.Len(t, calls, 1, "stale dark notification dropped")
	assert.Equal(t, "light", calls[0].Msg.Giscus.SetConfig.Theme)
}

func TestNotifier_CloseStopsRetry(t *testing.T) {
	var lookups atomic.Int32
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) {
		lookups.Add(1)
		return nil, false
	}}
	n := theme.NewNotifier(loc, 5*time.Millisecond, time.Minute)

	n.Notify(enum.ThemeDark)
	time.Sleep(20 * time.Millisecond)
	n.Close()

	after := lookups.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, lookups.Load(), "no lookups after close")
}

func TestNotifier_PostErrorNotRecordedAsDelivered(t *testing.T) {
	frame := &mocks.FrameMock{PostFunc: func(theme.WidgetMessage) error { return assert.AnError }}
	loc := &mocks.FrameLocatorMock{FindFunc: func() (theme.Frame, bool) { return frame, true }}
	n := theme.NewNotifier(loc, 5*time.Millisecond, 50*time.Millisecond)
	defer n.Close()

	n.Notify(enum.ThemeDark)

	_, ok := n.Notified()
	assert.False(t, ok)
}

func TestMailbox_PostAndTake(t *testing.T) {
	m := theme.NewMailbox()

	_, ok := m.Take()
	assert.False(t, ok, "empty mailbox")

	require.NoError(t, m.Post(theme.NewWidgetMessage(enum.ThemeDark)))
	require.NoError(t, m.Post(theme.NewWidgetMessage(enum.ThemeLight)))

	msg, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, "light", msg.Giscus.SetConfig.Theme, "latest message wins")

	_, ok = m.Take()
	assert.False(t, ok, "take clears the mailbox")
}

func TestRegistry_RegisterAndLocate(t *testing.T) {
	r := theme.NewRegistry()
	loc := r.Locator("v1")

	_, ok := loc.Find()
	assert.False(t, ok)

	mb := theme.NewMailbox()
	r.Register("v1", mb)

	f, ok := loc.Find()
	require.True(t, ok)
	assert.Equal(t, theme.Frame(mb), f)

	_, ok = r.Locator("v2").Find()
	assert.False(t, ok, "locator is visitor-scoped")

	r.Unregister("v1")
	_, ok = loc.Find()
	assert.False(t, ok)
}

func TestRegistry_RegisterIfAbsent(t *testing.T) {
	r := theme.NewRegistry()

	first := theme.NewMailbox()
	assert.Equal(t, theme.Frame(first), r.RegisterIfAbsent("v1", first))

	// a message delivered into the first mailbox must survive re-registration
	require.NoError(t, first.Post(theme.NewWidgetMessage(enum.ThemeDark)))
	second := theme.NewMailbox()
	assert.Equal(t, theme.Frame(first), r.RegisterIfAbsent("v1", second), "existing frame kept")

	f, ok := r.Locator("v1").Find()
	require.True(t, ok)
	msg, ok := f.(*theme.Mailbox).Take()
	require.True(t, ok, "pending message not lost")
	assert.Equal(t, "dark_dimmed", msg.Giscus.SetConfig.Theme)

	r.Unregister("v1")
	assert.Equal(t, theme.Frame(second), r.RegisterIfAbsent("v1", second), "absent visitor gets the new frame")
}
