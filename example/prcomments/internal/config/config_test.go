package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		want    Config
		wantErr string
	}{
		{
			name: "given required flags, then parses them",
			args: []string{"--owner", "acme", "--repo", "widgets", "--pr", "21"},
			want: Config{Owner: "acme", Repo: "widgets", Number: 21, Token: "tok"},
		},
		{
			name: "given polling flags, then parses them",
			args: []string{"--owner=acme", "--repo=widgets", "--pr=21", "--interval=1m", "-d", "--metrics-addr=:2112"},
			want: Config{
				Owner: "acme", Repo: "widgets", Number: 21, Token: "tok",
				Interval: time.Minute, Debug: true, MetricsAddr: ":2112",
			},
		},
		{
			name: "given webhook address, then watches with the secret",
			args: []string{"--owner=acme", "--repo=widgets", "--pr=21", "--webhook-addr=:8080"},
			env:  map[string]string{WebhookSecretEnv: "shh"},
			want: Config{
				Owner: "acme", Repo: "widgets", Number: 21, Token: "tok",
				WebhookAddr: ":8080", WebhookSecret: "shh",
			},
		},
		{
			name:    "given nothing, then reports every missing flag",
			wantErr: "--owner is required\n--repo is required\n--pr must be a positive number",
		},
		{
			name:    "given positional argument, then fails",
			args:    []string{"--owner", "acme", "extra"},
			wantErr: "unexpected argument: extra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenEnv, "tok")
			t.Setenv(WebhookSecretEnv, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)
}

func TestConfig_Watching(t *testing.T) {
	assert.False(t, Config{}.Watching())
	assert.True(t, Config{Interval: time.Second}.Watching())
	assert.True(t, Config{WebhookAddr: ":8080"}.Watching())
}
