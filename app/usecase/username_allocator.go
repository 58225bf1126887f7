package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"

	"github.com/google/uuid"
)

const (
	usernameBaseLength   = 8
	maxAllocationProbes  = 999
	fallbackBasePrefix   = "user"
	fallbackBaseHexChars = 8
)

// HandleAllocator implements port.UsernameAllocator by probing both
// stored-credential collections and appending numeric suffixes on
// collision. The loop is bounded; it is not transactional, so the
// returned handle is only a candidate until the create commits.
type HandleAllocator struct {
	creds  port.CredentialRepository
	logger *slog.Logger
}

// NewHandleAllocator creates a new allocator instance.
func NewHandleAllocator(creds port.CredentialRepository, logger *slog.Logger) *HandleAllocator {
	return &HandleAllocator{
		creds:  creds,
		logger: logger.With("component", "username_allocator"),
	}
}

// Allocate derives a base handle from the human name and finds the first
// free candidate in base, base1, base2, ... It fails with
// domain.ErrAllocationExhausted after the bounded probe count.
func (a *HandleAllocator) Allocate(ctx context.Context, baseName string) (string, error) {
	base := normalizeBase(baseName)
	if base == "" {
		base = randomBase()
		a.logger.Warn("base name produced no usable characters, using random base",
			"base_name", baseName,
			"fallback", base)
	}

	for attempt := 0; attempt < maxAllocationProbes; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = base + strconv.Itoa(attempt)
		}

		taken, err := a.taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe username %q: %w", candidate, err)
		}
		if !taken {
			a.logger.Info("username allocated",
				"username", candidate,
				"attempts", attempt+1)
			return candidate, nil
		}
	}

	a.logger.Error("username allocation exhausted", "base", base)
	return "", domain.ErrAllocationExhausted
}

// taken probes both collections; a match in either claims the handle.
func (a *HandleAllocator) taken(ctx context.Context, username string) (bool, error) {
	for _, col := range domain.Collections() {
		exists, err := a.creds.ExistsByUsername(ctx, col, username)
		if err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}

// normalizeBase lowercases the name, strips everything that is not an
// ASCII letter or digit, and truncates to the base length.
func normalizeBase(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= usernameBaseLength {
				break
			}
		}
	}
	return b.String()
}

// randomBase covers names with no alphanumeric characters at all, which
// the normalization legitimately reduces to an empty string.
func randomBase() string {
	hexed := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fallbackBasePrefix + hexed[:fallbackBaseHexChars]
}
