package world

import (
	"sync"
	"testing"

	"github.com/samdwyer/tileworld/internal/gamedata"
)

const testSeed = 0.42

var (
	catalogOnce sync.Once
	catalog     *gamedata.Catalog
)

// testCatalog returns the embedded catalog, loaded once per test binary.
func testCatalog(t *testing.T) *gamedata.Catalog {
	t.Helper()
	catalogOnce.Do(func() {
		catalog = gamedata.MustLoadCatalog()
	})
	return catalog
}

func intPtr(v int) *int { return &v }
