package migrate

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
)

var (
	// ErrDuplicateID is returned when registering the same migration twice.
	ErrDuplicateID = errors.New("migrate: duplicate migration id")
	// ErrDuplicateChecksum is returned when two migrations share a checksum,
	// which usually means one was copied without bumping it.
	ErrDuplicateChecksum = errors.New("migrate: duplicate migration checksum")
	// ErrInvalidMigration wraps every field validation failure.
	ErrInvalidMigration = errors.New("migrate: invalid migration")
)

// registry keeps migrations sorted by ID. ULID text sorts by creation time,
// so the slice is also apply order.
type registry struct {
	mu         sync.RWMutex
	migrations []Migration
}

var defaultRegistry registry

// Register adds a migration to the in-process registry. It is called from
// init functions in internal/migrations.
func Register(m Migration) error {
	return defaultRegistry.add(m)
}

// List returns the registered migrations in apply order.
func List() []Migration {
	return defaultRegistry.all()
}

// ResetForTesting clears the registry. Intended for use in tests only.
func ResetForTesting() {
	defaultRegistry.mu.Lock()
	defaultRegistry.migrations = nil
	defaultRegistry.mu.Unlock()
}

func (r *registry) add(m Migration) error {
	if err := validateMigration(m); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, found := slices.BinarySearchFunc(r.migrations, m.ID, func(have Migration, id string) int {
		return strings.Compare(have.ID, id)
	})
	if found {
		return fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
	}
	for _, have := range r.migrations {
		if have.Checksum == m.Checksum {
			return fmt.Errorf("%w: %s used by %s and %s", ErrDuplicateChecksum, m.Checksum, have.ID, m.ID)
		}
	}
	r.migrations = slices.Insert(r.migrations, pos, m)
	return nil
}

func (r *registry) all() []Migration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.migrations)
}

// validateMigration checks the fields the runner and `migrate list` rely on.
// Apply runs inside the runner's transaction, so it is the only required
// hook; Validate is optional and runs after commit.
func validateMigration(m Migration) error {
	if m.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidMigration)
	}
	id, err := idwrap.NewText(m.ID)
	if err != nil {
		return fmt.Errorf("%w: id %q is not a ULID: %w", ErrInvalidMigration, m.ID, err)
	}
	// Stored records are keyed by the canonical form.
	if id.String() != m.ID {
		return fmt.Errorf("%w: id %q must be upper-case ULID text %q", ErrInvalidMigration, m.ID, id.String())
	}
	scheme, sum, ok := strings.Cut(m.Checksum, ":")
	if !ok || scheme == "" || sum == "" {
		return fmt.Errorf("%w: checksum %q must look like scheme:value", ErrInvalidMigration, m.Checksum)
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: %s needs a description", ErrInvalidMigration, m.ID)
	}
	if m.Apply == nil {
		return fmt.Errorf("%w: %s has no Apply hook", ErrInvalidMigration, m.ID)
	}
	return nil
}
