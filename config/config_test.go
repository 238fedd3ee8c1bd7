package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvDefaultsLayering(t *testing.T) {
	t.Setenv("MODULYN_DB_HOST", "db.internal")
	t.Setenv("MODULYN_REDIS_PORT", "6380")

	config := &Configuration{
		Env:    DEVELOPMENT,
		DBInfo: DBConf{Host: "flag-host"},
	}
	applyEnvDefaults(config)

	// Explicit flag values win over env.
	assert.Equal(t, "flag-host", config.DBInfo.Host)

	// Env fills fields the flags left empty.
	assert.Equal(t, 6380, config.RedisPort)

	// Built-in defaults fill whatever is still empty.
	assert.Equal(t, 5432, config.DBInfo.Port)
	assert.Equal(t, "modulyn", config.DBInfo.User)
	assert.Equal(t, "localhost", config.RedisHost)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "AE", config.DefaultPhoneRegion)
}

func TestApplyEnvDefaultsEnvFillsEmptyConfig(t *testing.T) {
	t.Setenv("MODULYN_DB_HOST", "db.internal")

	config := &Configuration{}
	applyEnvDefaults(config)

	assert.Equal(t, "db.internal", config.DBInfo.Host)
	assert.Equal(t, DEVELOPMENT, config.Env)
	assert.Equal(t, "localhost:8080", config.APIDomain)
	assert.Equal(t, "/var/lib/modulyn/uploads", config.UploadDir)
}
