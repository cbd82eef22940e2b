package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name        string
		skip, limit string
		want        Page
	}{
		{"defaults", "", "", Page{Skip: 0, Limit: DefaultLimit}},
		{"explicit", "10", "20", Page{Skip: 10, Limit: 20}},
		{"limit clamped high", "0", "500", Page{Skip: 0, Limit: MaxLimit}},
		{"limit clamped low", "0", "0", Page{Skip: 0, Limit: 1}},
		{"negative skip", "-4", "5", Page{Skip: 0, Limit: 5}},
		{"garbage", "x", "y", Page{Skip: 0, Limit: DefaultLimit}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePage(tc.skip, tc.limit))
		})
	}
}
