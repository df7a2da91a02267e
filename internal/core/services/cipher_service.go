package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/irgordon/cipher-cli/internal/core/domain"
	"github.com/irgordon/cipher-cli/internal/infrastructure/cipher"
)

type CipherService struct {
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCipherService(logger *slog.Logger) *CipherService {
	return &CipherService{
		validate: validator.New(),
		logger:   logger,
	}
}

// Transform validates the request in the same order the CLI reports problems
// (algorithm first, then rotations) and runs the selected scheme.
func (s *CipherService) Transform(ctx context.Context, req domain.CipherRequest) (*domain.CipherResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed, err := s.failedFields(req)
	if err != nil {
		return nil, err
	}

	// 1. Algorithm must be present and registered
	if failed["Algorithm"] {
		return nil, domain.ErrMissingAlgorithm
	}
	scheme, ok := cipher.Lookup(string(req.Algorithm))
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, req.Algorithm)
	}

	if failed["Direction"] {
		return nil, fmt.Errorf("invalid direction %q", req.Direction)
	}

	// 2. Rotation count only matters for schemes that use one
	params := cipher.Params{}
	if scheme.RequiresRotations() {
		if req.Rotations == nil {
			return nil, domain.ErrMissingRotations
		}
		if failed["Rotations"] {
			return nil, &domain.InvalidRotationsError{Rotations: *req.Rotations}
		}
		params.Rotations = *req.Rotations
	}

	// 3. Run the pure transformation
	var output string
	switch req.Direction {
	case domain.DirectionEncrypt:
		output = scheme.Encrypt(req.Input, params)
	case domain.DirectionDecrypt:
		output = scheme.Decrypt(req.Input, params)
	}

	s.logger.Debug("Cipher transform complete",
		slog.String("algorithm", scheme.Name()),
		slog.String("direction", string(req.Direction)),
		slog.Int("input_len", len(req.Input)),
		slog.Int("output_len", len(output)),
	)

	return &domain.CipherResult{
		Algorithm: domain.Algorithm(scheme.Name()),
		Direction: req.Direction,
		Input:     req.Input,
		Output:    output,
		Rotations: params.Rotations,
	}, nil
}

// failedFields runs struct validation and returns the names of the fields that failed.
func (s *CipherService) failedFields(req domain.CipherRequest) (map[string]bool, error) {
	failed := make(map[string]bool)

	err := s.validate.Struct(req)
	if err == nil {
		return failed, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("failed to validate cipher request: %w", err)
	}

	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}
	return failed, nil
}

var _ domain.CipherService = (*CipherService)(nil)
