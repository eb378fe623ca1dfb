package demohost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayloft-mods/hayloft/internal/hostapi"
)

func TestHost_Lifecycle(t *testing.T) {
	host := NewHost()

	info := host.Info()
	assert.Equal(t, GameTitle, info.Title)
	assert.Equal(t, GameVersion, info.Version)
	assert.NotNil(t, host.Shop())

	var seen []hostapi.Event
	record := func(e hostapi.Event) error {
		seen = append(seen, e)
		return nil
	}
	host.Events().Subscribe(hostapi.GameLaunched, record)
	host.Events().Subscribe(hostapi.MenuOpened, record)
	host.Events().Subscribe(hostapi.ShuttingDown, record)

	require.NoError(t, host.Launch())
	require.NoError(t, host.OpenMenu("ShopMenu"))
	require.NoError(t, host.Shutdown())

	require.Len(t, seen, 3)
	assert.Equal(t, hostapi.Event{Kind: hostapi.GameLaunched}, seen[0])
	assert.Equal(t, hostapi.Event{Kind: hostapi.MenuOpened, Detail: "ShopMenu"}, seen[1])
	assert.Equal(t, hostapi.Event{Kind: hostapi.ShuttingDown}, seen[2])
}
