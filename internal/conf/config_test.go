package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSettingsDefaults(t *testing.T) {
	settings := GetTestSettings()
	require.NoError(t, ValidateSettings(settings))
}

func TestValidateSettingsEmptyEndpoint(t *testing.T) {
	settings := GetTestSettings()
	settings.Model.Endpoint = ""
	assert.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsNonPositiveTimeout(t *testing.T) {
	settings := GetTestSettings()
	settings.Model.Timeout = 0
	assert.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsBothDatabasesEnabled(t *testing.T) {
	settings := GetTestSettings()
	settings.Output.MySQL.Enabled = true
	assert.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsNoDatabaseEnabled(t *testing.T) {
	settings := GetTestSettings()
	settings.Output.SQLite.Enabled = false
	assert.Error(t, ValidateSettings(settings))
}

func TestGetDefaultConfigPaths(t *testing.T) {
	paths, err := GetDefaultConfigPaths()
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0], "working directory should be searched first")
}
