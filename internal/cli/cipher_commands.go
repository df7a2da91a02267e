package cli

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/irgordon/cipher-cli/internal/core/domain"
)

type cipherFlags struct {
	algorithm string
	rotations string
	recipient string
}

func addCipherFlags(cmd *cobra.Command, f *cipherFlags) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "cipher to use: caesar or bacon (aliases: al)")
	cmd.Flags().StringVarP(&f.rotations, "rotations", "r", "", "rotation count for the caesar cipher (aliases: ro)")
}

func newEncryptCommand(deps Dependencies) *cobra.Command {
	var f cipherFlags

	cmd := &cobra.Command{
		Use:   "encrypt [input]",
		Short: "encrypt input using a specified algorithm",
		Example: "  cipher-cli encrypt Welcome to the hallowed chAmbers! -a caesar -r 54\n" +
			"  cipher-cli encrypt Meet at noon --algorithm=bacon --recipient=2348012345678",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := NewResponse(cmd.OutOrStdout())

			res, ok := runCipher(cmd, deps, resp, domain.DirectionEncrypt, args, f)
			if !ok {
				return ErrReported
			}

			// Only relay ciphertext that was actually produced
			if !cmd.Flags().Changed("recipient") {
				return nil
			}

			receipt, err := deps.Notifications.Notify(cmd.Context(), f.recipient, res.Output)
			if err != nil {
				deps.Logger.Debug("Notification not delivered", slog.Any("error", err))
				resp.Error(notificationErrorMessage(err))
				return ErrReported
			}
			resp.Success(notificationSuccessMessage(receipt))
			return nil
		},
	}

	addCipherFlags(cmd, &f)
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "WhatsApp number to send the ciphertext to, e.g. 2348012345678 (aliases: re)")
	return cmd
}

func newDecryptCommand(deps Dependencies) *cobra.Command {
	var f cipherFlags

	cmd := &cobra.Command{
		Use:     "decrypt [input]",
		Aliases: []string{"d", "de"},
		Short:   "decrypt input using a specified algorithm",
		Example: "  cipher-cli decrypt Ygneqog vq vjg jcnnqygf ejCodgtu! -a caesar -r 54",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := NewResponse(cmd.OutOrStdout())
			if _, ok := runCipher(cmd, deps, resp, domain.DirectionDecrypt, args, f); !ok {
				return ErrReported
			}
			return nil
		},
	}

	addCipherFlags(cmd, &f)
	return cmd
}

// runCipher turns flags and args into a CipherRequest, runs it and prints the result.
// It reports false when an error response was printed.
func runCipher(cmd *cobra.Command, deps Dependencies, resp *Response, dir domain.Direction, args []string, f cipherFlags) (*domain.CipherResult, bool) {
	req := domain.CipherRequest{
		Algorithm: domain.ParseAlgorithm(f.algorithm),
		Direction: dir,
		Input:     strings.Join(args, " "),
	}

	malformed := false
	if cmd.Flags().Changed("rotations") {
		n, err := strconv.Atoi(strings.TrimSpace(f.rotations))
		if err != nil {
			malformed = true
		} else {
			req.Rotations = &n
		}
	}

	res, err := deps.Ciphers.Transform(cmd.Context(), req)
	if err != nil {
		msg := cipherErrorMessage(err)
		// The flag was given but could not be parsed; the service only saw it as missing
		if malformed && errors.Is(err, domain.ErrMissingRotations) {
			msg = msgInvalidRotations
		}
		resp.Error(msg)
		return nil, false
	}

	resp.Success(resultMessage(res))
	return res, true
}
