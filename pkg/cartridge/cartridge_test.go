package cartridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func romOfSize(n int, cartType byte) []byte {
	data := make([]byte, n)
	data[cartridgeTypeAddr] = cartType
	return data
}

func TestLoadFromBytes_RejectsUndersizedImage(t *testing.T) {
	_, err := LoadFromBytes(make([]byte, 1024))
	require.True(t, errors.Is(err, ErrBadCartridge))
}

func TestLoadFromBytes_RejectsOversizedImage(t *testing.T) {
	_, err := LoadFromBytes(romOfSize(maxROMSize+bankSize, typeMBC1))
	require.True(t, errors.Is(err, ErrBadCartridge))
}

func TestLoadFromBytes_RejectsNonBankMultiple(t *testing.T) {
	_, err := LoadFromBytes(romOfSize(minROMSize+1, typeROMOnly))
	require.True(t, errors.Is(err, ErrBadCartridge))
}

func TestLoadFromBytes_RejectsUnknownCartridgeType(t *testing.T) {
	_, err := LoadFromBytes(romOfSize(minROMSize, 0xFF))
	require.True(t, errors.Is(err, ErrBadCartridge))
}

func TestLoadFromBytes_ROMOnlyAndMBC1BatterySelectMappers(t *testing.T) {
	c, err := LoadFromBytes(romOfSize(minROMSize, typeROMOnly))
	require.NoError(t, err)
	_, ok := c.Mapper().(*ROMOnly)
	require.True(t, ok)
	require.False(t, c.HasBattery())

	c, err = LoadFromBytes(romOfSize(minROMSize, typeMBC1RAMBat))
	require.NoError(t, err)
	_, ok = c.Mapper().(*MBC1)
	require.True(t, ok)
	require.True(t, c.HasBattery())
}
