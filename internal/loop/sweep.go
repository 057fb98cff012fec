package loop

import "github.com/tomz197/skyduel/internal/object"

// sweep advances the autonomous movers and evicts whatever left the
// playfield or was destroyed.
func (g *Game) sweep() {
	for _, list := range [][]*object.Entity{g.Bullets, g.EnemyBullets, g.Crates, g.Hearts} {
		for _, e := range list {
			e.Advance(g.Field)
		}
	}
	g.compact()
}

// compact drops removable entities from every collection.
func (g *Game) compact() {
	g.Enemies = object.Compact(g.Enemies)
	g.Bullets = object.Compact(g.Bullets)
	g.EnemyBullets = object.Compact(g.EnemyBullets)
	g.Crates = object.Compact(g.Crates)
	g.Hearts = object.Compact(g.Hearts)
}
