package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var clientFlags = []string{"-a", "-t", "-k", "-x", "-m", "-i", "-l"}

func TestFilterArgs_ClientCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "cobra subcommand and config file are dropped",
			args: []string{"keygen", "-c", "forks.yaml"},
			want: []string{},
		},
		{
			name: "gateway flags survive around a subcommand",
			args: []string{"-a", "10.0.0.5:50051", "keygen", "-l", "debug"},
			want: []string{"-a", "10.0.0.5:50051", "-l", "debug"},
		},
		{
			name: "product key with dashes is a value",
			args: []string{"-k", "abcde-FGHIJ-12345"},
			want: []string{"-k", "abcde-FGHIJ-12345"},
		},
		{
			name: "equals form",
			args: []string{"-m=1048576", "-verbose=true"},
			want: []string{"-m=1048576"},
		},
		{
			name: "missing value before the next flag",
			args: []string{"-t", "-x", "ROOT"},
			want: []string{"-t", "-x", "ROOT"},
		},
		{
			name: "flag at the end",
			args: []string{"-i"},
			want: []string{"-i"},
		},
		{
			name: "repeated flag keeps order",
			args: []string{"-l", "info", "-l", "warn"},
			want: []string{"-l", "info", "-l", "warn"},
		},
		{
			name: "nothing",
			args: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, clientFlags))
		})
	}
}

func TestFilterArgs_ServerStorageFlags(t *testing.T) {
	args := []string{"-d", "sqlite:forks.db", "-o", "memory", "-s", "10", "--unknown"}
	got := FilterArgs(args, []string{"-d", "-o"})
	assert.Equal(t, []string{"-d", "sqlite:forks.db", "-o", "memory"}, got)
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	cases := map[string]struct {
		args []string
		want string
	}{
		"short":                {[]string{"forkvault", "-c", "/etc/forks.yaml"}, "/etc/forks.yaml"},
		"long with equals":     {[]string{"forkvault", "-config=/etc/forks.json", "-k", "KEY"}, "/etc/forks.json"},
		"after a subcommand":   {[]string{"forkvault", "keygen", "-c", "forks.yml"}, "forks.yml"},
		"absent":               {[]string{"forkvault", "-a", "127.0.0.1:50051"}, ""},
		"last occurrence wins": {[]string{"forkvault", "-c", "one.json", "-config", "two.json"}, "two.json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			os.Args = tc.args
			assert.Equal(t, tc.want, ConfigFileFlag())
		})
	}
}
