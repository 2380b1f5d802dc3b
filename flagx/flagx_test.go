package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "enable.db", "-x", "other"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"-d", "enable.db"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--database=alt.db", "-x", "other"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"--database=alt.db"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--database=first.db", "-d", "second.db", "-x", "1"},
			allowedFlags: []string{"-d", "--database"},
			want:         []string{"--database=first.db", "-d", "second.db"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-q", "1", "--verbose"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
		{
			name:         "flag at end without value",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app", "-c", "conf.json", "-d", "enable.db"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"app", "--config=alt.json"}
	assert.Equal(t, "alt.json", JsonConfigFlags())

	os.Args = []string{"app", "-d", "enable.db"}
	assert.Equal(t, "", JsonConfigFlags())
}
