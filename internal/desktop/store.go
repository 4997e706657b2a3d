package desktop

import (
	"io"

	"github.com/rs/zerolog"

	"geofighter/internal/game"
	"geofighter/internal/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the best-score database at path. An empty path or a
// database that will not open falls back to an in-memory store.
func openStore(path string, log zerolog.Logger) (game.ScoreStore, io.Closer) {
	if path == "" {
		return store.NewMemory(), nopCloser{}
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("score database unavailable, best score will not persist")
		return store.NewMemory(), nopCloser{}
	}
	log.Debug().Str("path", path).Msg("score database opened")
	return db, db
}
