package command

import (
	"encoding/hex"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/athanorlabs/go-uecc/ec25519"
	"github.com/athanorlabs/go-uecc/session"
)

var errInvalidLogLevel = errors.New("invalid log level")

// newSession builds a session from the persistent flags, logging to the
// command's error stream.
func (rc *RootCommand) newSession(cmd *cobra.Command) (*session.Session, error) {
	conv, err := ec25519.ParseConvention(rc.v.GetString(conventionFlag))
	if err != nil {
		return nil, err
	}

	cipher, err := session.ParseCipherSuite(rc.v.GetString(cipherFlag))
	if err != nil {
		return nil, err
	}

	logger, err := rc.newLogger(cmd)
	if err != nil {
		return nil, err
	}

	cfg := session.DefaultConfig()
	cfg.Convention = conv
	cfg.Cipher = cipher
	cfg.Logger = logger

	return session.New(cfg)
}

func (rc *RootCommand) newLogger(cmd *cobra.Command) (hclog.Logger, error) {
	name := rc.v.GetString(logLevelFlag)

	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return nil, errors.Wrap(errInvalidLogLevel, name)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "uecc",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	}), nil
}

func decodeHexFlag(rc *RootCommand, name string) ([]byte, error) {
	s := strings.TrimSpace(rc.v.GetString(name))
	if s == "" {
		return nil, errors.Errorf("--%s is required", name)
	}

	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}

	return b, nil
}
