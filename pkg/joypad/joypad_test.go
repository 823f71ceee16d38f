package joypad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNibble_NoButtonsHeldReadsAllOnes(t *testing.T) {
	j := New()
	require.Equal(t, byte(0x0F), j.Nibble(true, true))
}

func TestNibble_UnselectedGroupReadsAllOnes(t *testing.T) {
	j := New()
	j.SetPressed(ButtonA, true)
	require.Equal(t, byte(0x0F), j.Nibble(false, true))
	require.Equal(t, byte(0x0E), j.Nibble(true, false))
}

func TestNibble_ReleaseRestoresBit(t *testing.T) {
	j := New()
	j.SetPressed(ButtonDown, true)
	require.Equal(t, byte(0x07), j.Nibble(false, true))
	j.SetPressed(ButtonDown, false)
	require.Equal(t, byte(0x0F), j.Nibble(false, true))
}

func TestNibble_BothGroupsSelectedORsTogether(t *testing.T) {
	j := New()
	j.SetPressed(ButtonA, true)
	j.SetPressed(ButtonUp, true)
	require.Equal(t, byte(0x0A), j.Nibble(true, true))
}
