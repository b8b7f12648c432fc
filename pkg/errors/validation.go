package errors

import (
	"math"
	"unicode"
)

// MinVertices is the smallest vertex count a spanning tree is defined for.
const MinVertices = 2

// MaxVertices bounds the vertex count. The densest graph at this size needs
// a bit-set of V·(V−1)/2 bits, about 4 GiB, plus its edge slice.
const MaxVertices = 1 << 18

// ValidateVertexCount checks that n is a usable vertex count for generation.
func ValidateVertexCount(n int) error {
	if n < MinVertices {
		return New(ErrCodeInvalidVertexCount, "vertex count %d < %d", n, MinVertices)
	}
	if n > MaxVertices {
		return New(ErrCodeInvalidVertexCount, "vertex count %d exceeds maximum %d", n, MaxVertices)
	}
	return nil
}

// ValidateDensity checks that d lies in the half-open interval (0, 1].
func ValidateDensity(d float64) error {
	if math.IsNaN(d) || d <= 0 || d > 1 {
		return New(ErrCodeInvalidDensity, "density %g not in (0, 1]", d)
	}
	return nil
}

// ValidateVertex checks that v is a vertex id of a graph with n vertices.
func ValidateVertex(v, n int) error {
	if v < 0 || v >= n {
		return New(ErrCodeOutOfRange, "vertex %d out of range [0, %d)", v, n)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is asked to write to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
