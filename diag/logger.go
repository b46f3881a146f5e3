package diag

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level diagnostic logger. Callers that want the
// runtime's warnings routed elsewhere can replace it before constructing
// any Dispatcher; the runtime only ever reads it through this variable.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()
