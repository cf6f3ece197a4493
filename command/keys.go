package command

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (rc *RootCommand) keygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new private key and its public key as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			fmt.Fprintf(out, "private: %s\n", hex.EncodeToString(prv.Bytes()))
			fmt.Fprintf(out, "public:  %s\n", hex.EncodeToString(prv.Public().Bytes()))
			return nil
		},
	}
}

func (rc *RootCommand) encryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt --pub <hex> <message>",
		Short: "Encrypt a message to a public key, printing base64",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.newSession(cmd)
			if err != nil {
				return err
			}

			raw, err := decodeHexFlag(rc, pubFlag)
			if err != nil {
				return err
			}

			pub, err := s.PublicKeyFromBytes(raw)
			if err != nil {
				return err
			}

			enc, err := s.EncryptToBase64([]byte(args[0]), pub)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), enc)
			return nil
		},
	}

	cmd.Flags().String(pubFlag, "", "recipient public key (hex)")
	rc.bindFlag(cmd, pubFlag)

	return cmd
}

func (rc *RootCommand) decryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt --key <hex> <base64>",
		Short: "Decrypt a base64 message with a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.newSession(cmd)
			if err != nil {
				return err
			}

			raw, err := decodeHexFlag(rc, keyFlag)
			if err != nil {
				return err
			}

			prv, err := s.PrivateKeyFromBytes(raw)
			if err != nil {
				return err
			}
			defer prv.Wipe()

			plain, err := s.DecryptFromBase64(strings.TrimSpace(args[0]), prv)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(plain))
			return nil
		},
	}

	cmd.Flags().String(keyFlag, "", "private key (hex)")
	rc.bindFlag(cmd, keyFlag)

	return cmd
}
