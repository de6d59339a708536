package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-a", ":8000", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":8000"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--config=conf.json", "-d", "dsn"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-a", "-d", "dsn"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", ":8000"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app", "-c", "server.json", "-a", ":8000"}
	assert.Equal(t, "server.json", JsonConfigFlags())

	os.Args = []string{"app", "-config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"app", "-a", ":8000"}
	assert.Equal(t, "", JsonConfigFlags())
}
