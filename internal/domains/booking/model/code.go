package model

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

const (
	VerificationCodeLength = 8

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// largest multiple of len(codeAlphabet) that fits in a byte; higher bytes are rejected
	codeByteLimit = 252
)

// CodeGenerator issues check-in verification codes.
type CodeGenerator func() (string, error)

// NewCodeGenerator draws codes from crypto/rand.
func NewCodeGenerator() CodeGenerator {
	return func() (string, error) {
		return RandomCode(rand.Reader)
	}
}

// RandomCode builds an uppercase alphanumeric code without modulo bias.
func RandomCode(source io.Reader) (string, error) {
	var (
		code strings.Builder
		buf  [1]byte
	)

	code.Grow(VerificationCodeLength)

	for code.Len() < VerificationCodeLength {
		if _, err := io.ReadFull(source, buf[:]); err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}

		if buf[0] >= codeByteLimit {
			continue
		}

		code.WriteByte(codeAlphabet[int(buf[0])%len(codeAlphabet)])
	}

	return code.String(), nil
}
