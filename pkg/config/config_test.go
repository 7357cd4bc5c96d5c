package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostable/credkit/pkg/config"
)

type testConfig struct {
	Name    string        `env:"CFG_TEST_NAME,required"`
	Port    int           `env:"CFG_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"5s"`
}

func TestLoad(t *testing.T) {
	t.Setenv("CFG_TEST_NAME", "portal")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "portal", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore; the unset makes the variable absent
	// rather than empty, which is what `required` actually checks.
	t.Setenv("CFG_TEST_NAME", "placeholder")
	os.Unsetenv("CFG_TEST_NAME")

	var cfg testConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
