package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	t.Parallel()

	existing := map[string]any{
		"env": map[string]any{
			"serviceName": "mingle",
			"log": map[string]any{
				"level": "info",
			},
		},
		"token": map[string]any{
			"accessLifetime":  "15m",
			"refreshLifetime": "720h",
		},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "aligns segments with existing yaml keys",
			key:  "ENV_SERVICENAME",
			want: "env.serviceName",
		},
		{
			name: "nested section",
			key:  "ENV_LOG_LEVEL",
			want: "env.log.level",
		},
		{
			name: "camelCase leaf",
			key:  "TOKEN_ACCESSLIFETIME",
			want: "token.accessLifetime",
		},
		{
			name: "unknown keys pass through lowercased",
			key:  "TOKEN_UNKNOWN_FIELD",
			want: "token.unknown.field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.key, existing))
		})
	}
}

func TestApplyTokenEnvAliases(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "supersecret")
	t.Setenv("ACCESS_TOKEN_LIFETIME", "20m")
	t.Setenv("REFRESH_TOKEN_LIFETIME", "168h")

	token := TokenConfig{Secret: "from-file", AccessLifetime: time.Minute}
	require.NoError(t, applyTokenEnvAliases(&token))

	assert.Equal(t, "supersecret", token.Secret)
	assert.Equal(t, 20*time.Minute, token.AccessLifetime)
	assert.Equal(t, 168*time.Hour, token.RefreshLifetime)
}

func TestApplyTokenEnvAliasesRejectsBadDuration(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_LIFETIME", "soon")

	token := TokenConfig{}
	err := applyTokenEnvAliases(&token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_LIFETIME")
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-0")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_0_PASSWORD", "secret")

	replicas := buildReplicasFromEnv()
	require.Len(t, replicas, 1)
	assert.Equal(t, "replica-0", replicas[0].Host)
	assert.Equal(t, "5432", replicas[0].Port)
	assert.Equal(t, "reader", replicas[0].UserName)
	assert.Equal(t, "secret", replicas[0].Password)
}
