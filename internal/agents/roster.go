package agents

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/hexes/internal/logger"
	"github.com/Faultbox/hexes/internal/world"
	"github.com/Faultbox/hexes/pkg/hex"
)

// ErrNoSpawnTiles is returned when no reachable tile is free to spawn on.
var ErrNoSpawnTiles = errors.New("no reachable tiles to spawn on")

// Navigator is the map surface agents need. *world.Map implements it.
type Navigator interface {
	Path(start hex.Axial) ([]hex.Axial, error)
	IsReachable(a hex.Axial) bool
	IsGoal(a hex.Axial) bool
	EachTile(fn func(a hex.Axial, t world.Tile))
}

// Agent is a uniquely identified walker on the map.
type Agent struct {
	ID uuid.UUID
	*Mover
}

// Arrived reports whether the agent stands on a goal tile.
func (a *Agent) Arrived(nav Navigator) bool {
	return nav.IsGoal(a.Position())
}

// PlanReport summarises one round of path requests.
type PlanReport struct {
	Planned     int
	Arrived     int
	Unreachable []uuid.UUID
}

// Roster owns a set of agents. It is not safe for concurrent use.
type Roster struct {
	agents []*Agent
	byID   map[uuid.UUID]*Agent
	rng    *rand.Rand
}

// NewRoster creates an empty roster. rng drives spawn placement and agent IDs,
// so a seeded source reproduces a whole run.
func NewRoster(rng *rand.Rand) *Roster {
	return &Roster{
		byID: make(map[uuid.UUID]*Agent),
		rng:  rng,
	}
}

// Add places a new agent at position.
func (r *Roster) Add(position hex.Axial) (*Agent, error) {
	id, err := uuid.NewRandomFromReader(r.rng)
	if err != nil {
		return nil, fmt.Errorf("generating agent id: %w", err)
	}
	a := &Agent{ID: id, Mover: NewMover(position)}
	r.agents = append(r.agents, a)
	r.byID[id] = a
	return a, nil
}

// Spawn adds n agents on distinct reachable tiles that are not goals.
// Fewer than n agents are spawned if the map runs out of such tiles.
func (r *Roster) Spawn(nav Navigator, n int) ([]*Agent, error) {
	var candidates []hex.Axial
	nav.EachTile(func(a hex.Axial, _ world.Tile) {
		if nav.IsReachable(a) && !nav.IsGoal(a) {
			candidates = append(candidates, a)
		}
	})
	if len(candidates) == 0 {
		return nil, ErrNoSpawnTiles
	}

	// Storage iteration order is unspecified; sort so a seed picks the same tiles.
	slices.SortFunc(candidates, func(a, b hex.Axial) int {
		if c := cmp.Compare(a.Q, b.Q); c != 0 {
			return c
		}
		return cmp.Compare(a.R, b.R)
	})
	r.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if n > len(candidates) {
		logger.Named("agents").Warn("not enough spawn tiles",
			zap.Int("requested", n),
			zap.Int("available", len(candidates)))
		n = len(candidates)
	}

	spawned := make([]*Agent, 0, n)
	for _, pos := range candidates[:n] {
		a, err := r.Add(pos)
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, a)
	}
	return spawned, nil
}

// Plan requests one path per agent from its current position.
// Agents on unreachable tiles are left standing and listed in the report.
func (r *Roster) Plan(nav Navigator) PlanReport {
	log := logger.Named("agents")

	var report PlanReport
	for _, a := range r.agents {
		path, err := nav.Path(a.Position())
		if err != nil {
			a.ClearPath()
			report.Unreachable = append(report.Unreachable, a.ID)
			log.Debug("no path for agent",
				zap.Stringer("agent", a.ID),
				zap.Stringer("at", a.Position()),
				zap.Error(err))
			continue
		}

		a.Follow(path)
		report.Planned++
		if !a.IsFollowingPath {
			report.Arrived++
		}
		log.Debug("agent path planned",
			zap.Stringer("agent", a.ID),
			zap.Stringer("from", a.Position()),
			zap.Int("hops", len(path)-1))
	}
	return report
}

// Step advances every moving agent one tile and returns how many moved.
func (r *Roster) Step() int {
	moved := 0
	for _, a := range r.agents {
		if a.Step() {
			moved++
		}
	}
	return moved
}

// Run steps agents until none move or maxSteps is reached.
// Returns the number of steps taken.
func (r *Roster) Run(maxSteps int) int {
	for step := 0; step < maxSteps; step++ {
		if r.Step() == 0 {
			return step
		}
	}
	return maxSteps
}

// Get returns the agent with the given ID.
func (r *Roster) Get(id uuid.UUID) (*Agent, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Agents returns the agents in spawn order.
func (r *Roster) Agents() []*Agent {
	return slices.Clone(r.agents)
}

// Len returns the number of agents.
func (r *Roster) Len() int {
	return len(r.agents)
}
