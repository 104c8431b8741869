package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		85000:    "85,000",
		25000000: "25,000,000",
		-123456:  "-123,456",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatThousands(in))
	}
}
