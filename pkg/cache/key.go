// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a new key generator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{prefix: "janus"}
}

// Generate generates a cache key from inputs using a SHA-256 hash.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0}) // separator so ("ab","c") != ("a","bc")
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// GenerateForURL generates a key for a downloaded resource.
func (kg *KeyGenerator) GenerateForURL(url string) string {
	return kg.Generate("url", url)
}
