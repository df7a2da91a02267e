package domain

import (
	"context"
	"strings"
)

// Algorithm names a cipher the CLI can run.
type Algorithm string

const (
	AlgorithmCaesar Algorithm = "caesar"
	AlgorithmBacon  Algorithm = "bacon"
)

// ParseAlgorithm normalises a user supplied algorithm name. It does not check
// that the algorithm exists; CipherService does that.
func ParseAlgorithm(s string) Algorithm {
	return Algorithm(strings.ToLower(strings.TrimSpace(s)))
}

// Direction selects between encryption and decryption.
type Direction string

const (
	DirectionEncrypt Direction = "encrypt"
	DirectionDecrypt Direction = "decrypt"
)

// CipherRequest is the validated intent of a single encrypt or decrypt call.
type CipherRequest struct {
	Algorithm Algorithm `validate:"required"`
	Direction Direction `validate:"required,oneof=encrypt decrypt"`
	Input     string

	// Rotations is nil when the caller did not supply a rotation count.
	Rotations *int `validate:"omitempty,gt=0"`
}

// CipherResult is what a CipherService hands back to the presentation layer.
type CipherResult struct {
	Algorithm Algorithm
	Direction Direction
	Input     string
	Output    string
	Rotations int // 0 for algorithms that take no rotation count
}

// CipherService runs a cipher request end to end.
type CipherService interface {
	Transform(ctx context.Context, req CipherRequest) (*CipherResult, error)
}
