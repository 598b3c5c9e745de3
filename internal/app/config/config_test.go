package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())

	assert.Equal(t, "epg.xml", conf.Output)
	assert.Equal(t, 48, conf.WindowHours)
	assert.Equal(t, 60, conf.SlotMinutes)
	assert.Equal(t, -3, conf.UTCOffset)
	assert.Equal(t, "Programa Exemplo", conf.Title)
	assert.Equal(t, "Sem informações no momento.", conf.Desc)

	assert.Equal(t, 48*time.Hour, conf.Window())
	assert.Equal(t, time.Hour, conf.SlotDuration())
	assert.Equal(t, 60*time.Second, conf.Timeout())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty output",
			mutate:  func(c *Config) { c.Output = "" },
			wantErr: true,
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.WindowHours = 0 },
			wantErr: true,
		},
		{
			name:    "zero slot",
			mutate:  func(c *Config) { c.SlotMinutes = 0 },
			wantErr: true,
		},
		{
			name:    "slot longer than the window",
			mutate:  func(c *Config) { c.WindowHours = 1; c.SlotMinutes = 90 },
			wantErr: true,
		},
		{
			name:    "offset too far east",
			mutate:  func(c *Config) { c.UTCOffset = 15 },
			wantErr: true,
		},
		{
			name:    "offset too far west",
			mutate:  func(c *Config) { c.UTCOffset = -13 },
			wantErr: true,
		},
		{
			name:    "slot equal to the window",
			mutate:  func(c *Config) { c.WindowHours = 1; c.SlotMinutes = 60 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(conf)

			err := conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFixesSoftFields(t *testing.T) {
	conf := Default()
	conf.Title = ""
	conf.Desc = ""
	conf.UserAgent = ""
	conf.TimeoutSeconds = 0

	require.NoError(t, conf.Validate())

	assert.Equal(t, "Programa Exemplo", conf.Title)
	assert.Equal(t, "Sem informações no momento.", conf.Desc)
	assert.NotEmpty(t, conf.UserAgent)
	assert.Equal(t, 60, conf.TimeoutSeconds)
}

func TestCreateDefaultCfgAndLoad(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, CreateDefaultCfg(fPath))

	conf, err := Load(fPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "config.yml")
	content := "windowHours: 24\nutcOffset: 0\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(fPath, []byte(content), 0644))

	conf, err := Load(fPath)
	require.NoError(t, err)

	assert.Equal(t, 24, conf.WindowHours)
	assert.Equal(t, 0, conf.UTCOffset)
	assert.Equal(t, "debug", conf.Log.Level)

	// everything else stays at the default
	assert.Equal(t, "epg.xml", conf.Output)
	assert.Equal(t, 60, conf.SlotMinutes)
	assert.Equal(t, "Programa Exemplo", conf.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nao-existe.yml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(fPath, []byte("windowHours: [not a number"), 0644))

	_, err := Load(fPath)
	assert.Error(t, err)
}
