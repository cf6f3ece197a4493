// Package command implements the uecc command line tool.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "uecc"

	conventionFlag = "convention"
	cipherFlag     = "cipher"
	logLevelFlag   = "log-level"
	pubFlag        = "pub"
	keyFlag        = "key"
)

type RootCommand struct {
	baseCmd *cobra.Command
	v       *viper.Viper
}

// NewRootCommand builds the uecc command tree. Every flag can also be set
// through an UECC_<FLAG> environment variable, with dashes as underscores.
func NewRootCommand() *RootCommand {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rc := &RootCommand{
		baseCmd: &cobra.Command{
			Use:           "uecc",
			Short:         "Public-key encryption and signatures over Curve25519",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		v: v,
	}

	flags := rc.baseCmd.PersistentFlags()
	flags.String(conventionFlag, "ed25519", "point wire convention (legacy|ed25519)")
	flags.String(cipherFlag, "chacha20poly1305", "message cipher (chacha20poly1305|xsalsa20poly1305)")
	flags.String(logLevelFlag, "info", "log level (trace|debug|info|warn|error)")

	for _, name := range []string{conventionFlag, cipherFlag, logLevelFlag} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	rc.registerSubCommands()

	return rc
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		rc.demoCommand(),
		rc.keygenCommand(),
		rc.encryptCommand(),
		rc.decryptCommand(),
		versionCommand(),
	)
}

// bindFlag ties a subcommand flag to its environment variable.
func (rc *RootCommand) bindFlag(cmd *cobra.Command, name string) {
	_ = rc.v.BindPFlag(name, cmd.Flags().Lookup(name))
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
