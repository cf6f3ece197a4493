package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

const demoMessage = "If you waste your time a talking\n" +
	"To the people who don't listen\n" +
	"To the things that you are saying\n" +
	"Who do you thinks gonna hear?"

func (rc *RootCommand) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [message]",
		Short: "Generate a key pair, then encrypt and decrypt a message with it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rc.runDemo,
	}
}

func (rc *RootCommand) runDemo(cmd *cobra.Command, args []string) error {
	text := demoMessage
	if len(args) > 0 {
		text = args[0]
	}

	s, err := rc.newSession(cmd)
	if err != nil {
		return err
	}

	prv, err := s.GenerateKey()
	if err != nil {
		return err
	}
	defer prv.Wipe()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n*** Message:\n%s\n", text)

	enc, err := s.EncryptToBase64([]byte(text), prv.Public())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n*** Encrypted message:\n%s\n", enc)

	plain, err := s.DecryptFromBase64(enc, prv)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n*** Decrypted message:\n%s\n", plain)

	fmt.Fprintf(out, "\n*** Now try again with another message\n\nUsage: %s demo <message>\n", cmd.Root().Name())
	return nil
}
