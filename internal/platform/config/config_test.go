package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)
	s.True(cfg.Compliance.GDPREnabled)
	s.True(cfg.Compliance.HIPAAEnabled)
	s.Equal("memory", cfg.State.Backend)
	s.Equal(":8080", cfg.Server.Addr)
	s.Equal(5*time.Second, cfg.Compliance.LockTimeout)
}

func (s *ConfigSuite) TestMissingFileIgnored() {
	_, err := Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.NoError(err)
}

func (s *ConfigSuite) TestFileThenEnvOverride() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
compliance:
  gdpr_enabled: false
  contact_email: dpo@example.org
log:
  level: debug
`), 0o600))
	s.T().Setenv("CUSTODIAN_LOG__LEVEL", "warn")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.False(cfg.Compliance.GDPREnabled)
	s.Equal("dpo@example.org", cfg.Compliance.ContactEmail)
	s.Equal("warn", cfg.Log.Level)
}

func (s *ConfigSuite) TestValidation() {
	s.Run("unknown backend", func() {
		s.T().Setenv("CUSTODIAN_STATE__BACKEND", "etcd")
		_, err := Load("")
		s.Error(err)
	})

	s.Run("redis backend needs url", func() {
		cfg := Defaults()
		cfg.State.Backend = "redis"
		s.ErrorContains(cfg.Validate(), "redis.url")
	})

	s.Run("kafka needs brokers", func() {
		cfg := Defaults()
		cfg.Audit.Kafka.Enabled = true
		s.Error(cfg.Validate())
	})

	s.Run("production rejects dev signing key", func() {
		cfg := Defaults()
		cfg.Environment = "production"
		s.ErrorContains(cfg.Validate(), "jwt_signing_key")
	})
}
