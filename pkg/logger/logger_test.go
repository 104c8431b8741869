package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("hello", StringField("symbol", "AAPL"), IntField("risk_score", 5))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	assert.Equal(t, "error", ErrorField(errors.New("boom")).Key)
	assert.Equal(t, "latency", DurationField("latency", time.Second).Key)
	assert.Equal(t, "close", Float64Field("close", 1.5).Key)
	assert.Equal(t, "forced", BoolField("forced", true).Key)
	assert.Equal(t, "payload", Field("payload", map[string]int{"a": 1}).Key)
}
