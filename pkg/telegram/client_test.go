package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-stock-intel/pkg/logger"
)

func TestNewNotifierWithoutTokenLogs(t *testing.T) {
	n := NewNotifier("", 0, logger.NewNop())

	_, ok := n.(*logNotifier)
	assert.True(t, ok)
	assert.NoError(t, n.SendMessage("report"))
}
