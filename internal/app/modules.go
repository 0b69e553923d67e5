package app

import (
	"io"

	"github.com/specialistvlad/recoseq/internal/handlers"
	"github.com/specialistvlad/recoseq/modules/print"
	"github.com/specialistvlad/recoseq/modules/relay"
)

// coreModules is the list of modules compiled into the recoseq binary.
func coreModules(outW io.Writer) []handlers.Module {
	return []handlers.Module{
		&relay.Module{Fallback: true},
		&print.Module{Out: outW},
	}
}
