package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poppi/models"
)

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	printMessages(&buf, "Poppi", []models.ChatMessage{
		{Text: "Monday", Sender: models.SenderUser},
		{Text: "Available times on Monday (9am-5pm):", Sender: models.SenderBot, Options: []string{"10:00 AM", "10:30 AM"}},
	})
	assert.Equal(t, "Poppi: Available times on Monday (9am-5pm):\n  1) 10:00 AM\n  2) 10:30 AM\n", buf.String())
}

func TestResolveInput(t *testing.T) {
	opts := []string{"Monday", "Tuesday"}
	assert.Equal(t, "Tuesday", resolveInput(" 2 ", opts))
	assert.Equal(t, "3", resolveInput("3", opts))
	assert.Equal(t, "jane@x.com", resolveInput("jane@x.com", opts))
	assert.Equal(t, "1", resolveInput("1", nil))
}

func TestResolveDay(t *testing.T) {
	now := time.Date(2025, 6, 4, 22, 30, 0, 0, time.UTC) // Wednesday

	day, err := resolveDay("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), day)

	day, err = resolveDay("monday", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), day)

	day, err = resolveDay("2025-07-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = resolveDay("someday", now)
	assert.Error(t, err)
}
