package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/catalog"
)

// LinearCatalogYAML describes rooms that only chain eastward. With the "first" entrance
// policy every room enters from the west, so each run is a straight line that never overlaps.
const LinearCatalogYAML = `
templates:
  - id: entry
    kind: first_room
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: East, kind: arrow, position: [5, 0, 0]}

  - id: hall
    kind: room
    encounters: [rats]
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: West, kind: arrow, position: [-5, 0, 0], yaw: 180}
          - {name: East, kind: arrow, position: [5, 0, 0]}

  - id: vault
    kind: room
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: West, kind: arrow, position: [-5, 0, 0], yaw: 180}
          - {name: East, kind: arrow, position: [5, 0, 0]}

  - id: market
    kind: shop
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: West, kind: arrow, position: [-5, 0, 0], yaw: 180}
          - {name: East, kind: arrow, position: [5, 0, 0]}

  - id: lair
    kind: end_room
    encounters: [dragon]
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: West, kind: arrow, position: [-5, 0, 0], yaw: 180}

  - id: dead_end
    kind: room
    components:
      - {name: Bounds, kind: box, position: [0, 0, 2], extent: [5, 5, 2]}
      - name: ExitList
        kind: group
        children:
          - {name: West, kind: arrow, position: [-5, 0, 0], yaw: 180}

  - id: straight
    kind: corridor
    components:
      - {name: Bounds, kind: box, position: [3, 0, 1.5], extent: [3, 1.5, 1.5]}
      - name: ExitList
        kind: group
        children:
          - {name: Start, kind: arrow, yaw: 180}
          - {name: End, kind: arrow, position: [6, 0, 0]}

  - id: uturn
    kind: corridor
    components:
      - {name: Bounds, kind: box, position: [3, 0, 1.5], extent: [3, 1.5, 1.5]}
      - name: ExitList
        kind: group
        children:
          - {name: Start, kind: arrow, yaw: 180}
          - {name: End, kind: arrow, position: [2, 0, 0], yaw: 180}
`

// LinearCatalog parses LinearCatalogYAML
func LinearCatalog(t *testing.T) *catalog.Catalog {
	c, err := catalog.Parse([]byte(LinearCatalogYAML))
	require.NoError(t, err, "failed to parse linear catalog")
	return c
}

// DefaultCatalog loads the embedded catalog
func DefaultCatalog(t *testing.T) *catalog.Catalog {
	c, err := catalog.Default()
	require.NoError(t, err, "failed to load default catalog")
	return c
}
