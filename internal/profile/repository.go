package profile

import (
	"log/slog"

	"github.com/ojalehto/fitplan/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// repository groups the per-table repositories sharing one database handle.
type repository struct {
	profiles *profileRepository
	plans    *planRepository
	history  *historyRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		profiles: &profileRepository{db: db, logger: logger},
		plans:    &planRepository{db: db, logger: logger},
		history:  &historyRepository{db: db, logger: logger},
	}
}
