package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/irgordon/cipher-cli/internal/core/domain"
)

// ErrReported is returned by a command that has already printed an error
// response. The caller should exit non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// Notifications is the part of the notification service the CLI needs.
type Notifications interface {
	Notify(ctx context.Context, recipient, ciphertext string) (*domain.NotificationReceipt, error)
}

// Dependencies holds everything the command tree needs. Nothing in here reads
// the process environment.
type Dependencies struct {
	Ciphers       domain.CipherService
	Notifications Notifications
	Logger        *slog.Logger
}

const description = `
        This application encrypts and decrypts secret messages with ease.
        Try out the Caesar and Bacon Cipher options to generate secret messages and share with your inner circle
        `

const examples = `
        Example Usage

        cipher-cli encrypt Welcome to the hallowed chAmbers!  --algorithm=caesar --rotations=54

        cipher-cli encrypt Welcome to the hallowed chambers! --algorithm=bacon

        cipher-cli decrypt Ygneqog vq vjg jcnnqygf ejCodgtu! --algorithm=caesar --rotations=54

        `

// NewRootCommand builds the cipher-cli command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "cipher-cli [command] [arg]",
		Short:         "Encrypt and decrypt secret messages in seconds!!!",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.YellowString(description))
			fmt.Fprintln(out, color.BlueString(examples))
		},
	}

	root.SetGlobalNormalizationFunc(normalizeFlagName)
	// Subcommands inherit this, so flag parse errors get the same banner as everything else
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		NewResponse(cmd.OutOrStdout()).Error(err.Error())
		return ErrReported
	})
	root.AddCommand(
		newEncryptCommand(deps),
		newDecryptCommand(deps),
	)
	return root
}

// normalizeFlagName maps the short long-form aliases onto their canonical flags.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "al":
		name = "algorithm"
	case "ro":
		name = "rotations"
	case "re":
		name = "recipient"
	}
	return pflag.NormalizedName(name)
}
