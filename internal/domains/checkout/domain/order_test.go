package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	at := time.UnixMilli(1724331234567)
	require.Equal(t, "VEG-234567", NewOrderID(at))
	// Deterministic for a fixed instant.
	require.Equal(t, NewOrderID(at), NewOrderID(at))
}

func TestConfirmationMessage(t *testing.T) {
	msg := ConfirmationMessage("Awa", "VEG-123456")
	require.Contains(t, msg, "Merci Awa")
	require.Contains(t, msg, "VEG-123456")

	fallback := ConfirmationMessage("", "VEG-000001")
	require.Contains(t, fallback, "Merci client·e")
}
