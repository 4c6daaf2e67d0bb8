// hexmap is a CLI for generating hex terrain, editing it and querying goal paths.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/hexes/internal/agents"
	"github.com/Faultbox/hexes/internal/config"
	"github.com/Faultbox/hexes/internal/logger"
	"github.com/Faultbox/hexes/internal/world"
	"github.com/Faultbox/hexes/pkg/hex"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "path":
		cmdPath(args)
	case "flatten":
		cmdFlatten(args)
	case "field":
		cmdField(args)
	case "agents":
		cmdAgents(args)
	case "pick":
		cmdPick(args)
	case "config":
		cmdConfig(args)
	case "schema":
		cmdSchema(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hexmap - chunked hex terrain and goal pathfinding

Usage:
  hexmap [flags] <command> [options]

Flags:
  -config <file>      Config file (default ./hexmap.yaml or user config dir)
  -seed <n>           Terrain seed
  -generator <name>   uniform or noise
  -width <n>          Map width in chunks
  -height <n>         Map height in chunks
  -debug              Debug logging
  -log-file <file>    Also write JSON logs to file

Commands:
  info                               Show terrain and field summary
  path <q> <r>                       Print the path from a tile to the nearest goal
  flatten <q> <r> <h> [...]          Flatten tiles, rebuild and report reachability
  field [-radius n] [-center q,r]    Draw direction labels around a tile
  agents [-n n]                      Spawn agents and walk them to the goals
  pick <x> <y>                       Find the tile under a screen position
  config [-out file]                 Print or save the effective config
  schema [-out file]                 Print or save the config JSON schema

Examples:
  hexmap -seed 7 info
  hexmap path 30 22
  hexmap -generator noise field -radius 8 -center 10,6
  hexmap flatten 12 6 0 13 6 0`)
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// setup loads config, starts logging and generates the map.
// The caller must defer logger.Sync.
func setup() (*config.Config, *world.Map, int64) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	seed := cfg.ResolveSeed()
	m, err := world.New(cfg.MapOptions(seed))
	if err != nil {
		logger.Error("failed to generate map", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("map ready",
		zap.Int64("seed", seed),
		zap.String("generator", cfg.Generation.Generator))
	return cfg, m, seed
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		out[i] = v
	}
	return out, nil
}

func cmdInfo(args []string) {
	cfg, m, seed := setup()
	defer logger.Sync()

	stats := m.LastRebuild()
	chunks := int64(cfg.Map.ChunksWide * cfg.Map.ChunksHigh)

	fmt.Printf("Seed:      %d (%s)\n", seed, cfg.Generation.Generator)
	fmt.Printf("Chunks:    %s (%dx%d from %v)\n", humanize.Comma(chunks), cfg.Map.ChunksWide, cfg.Map.ChunksHigh, cfg.Map.Origin)
	fmt.Printf("Tiles:     %s\n", humanize.Comma(int64(m.TileCount())))
	fmt.Printf("Tallest:   %d\n", m.Tallest())
	fmt.Printf("Rules:     max floor %d, ceiling %d\n", m.Rules().MaxFloorHeight, m.Rules().MaxBrickHeight)
	fmt.Println()

	goals := make([]string, 0, len(m.Goals()))
	for _, g := range m.Goals() {
		goals = append(goals, g.String())
	}
	fmt.Printf("Goals:     %s\n", strings.Join(goals, " "))
	if stats.Skipped > 0 {
		fmt.Printf("Skipped:   %d (outside terrain)\n", stats.Skipped)
	}

	reachable := m.ReachableCount()
	share := 0.0
	if m.TileCount() > 0 {
		share = 100 * float64(reachable) / float64(m.TileCount())
	}
	fmt.Printf("Reachable: %s (%.1f%%)\n", humanize.Comma(int64(reachable)), share)
	fmt.Printf("Farthest:  %s hops\n", humanize.Comma(int64(max(stats.Layers-1, 0))))
}

func cmdPath(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: hexmap path <q> <r>")
		os.Exit(1)
	}
	nums, err := parseInts(args)
	if err != nil {
		fail(err)
	}

	_, m, _ := setup()
	defer logger.Sync()

	start := hex.NewAxial(nums[0], nums[1])
	path, err := m.Path(start)
	switch {
	case errors.Is(err, world.ErrNoTile):
		fmt.Fprintf(os.Stderr, "No tile at %v\n", start)
		os.Exit(1)
	case errors.Is(err, world.ErrUnreachable):
		fmt.Printf("%v cannot reach any goal\n", start)
		return
	case err != nil:
		fail(err)
	}

	for i, a := range path {
		h, _ := m.Height(a)
		d, _ := m.Direction(a)
		fmt.Printf("%4d  %-10v h=%d  %s\n", i, a, h, d)
	}
	fmt.Fprintf(os.Stderr, "\n(%s hops)\n", humanize.Comma(int64(len(path)-1)))
}

func cmdFlatten(args []string) {
	if len(args) == 0 || len(args)%3 != 0 {
		fmt.Fprintln(os.Stderr, "Usage: hexmap flatten <q> <r> <h> [<q> <r> <h> ...]")
		os.Exit(1)
	}
	nums, err := parseInts(args)
	if err != nil {
		fail(err)
	}

	_, m, _ := setup()
	defer logger.Sync()

	before := m.ReachableCount()
	for i := 0; i < len(nums); i += 3 {
		a := hex.NewAxial(nums[i], nums[i+1])
		if nums[i+2] < 0 || nums[i+2] > 255 {
			fail(fmt.Errorf("height %d out of range", nums[i+2]))
		}

		old, ok := m.Tile(a)
		if !ok {
			fmt.Fprintf(os.Stderr, "Skipping %v: no tile\n", a)
			continue
		}
		m.Flatten(a, uint8(nums[i+2]))
		now, _ := m.Tile(a)
		fmt.Printf("%-10v %s -> %s\n", a, old, now)
	}

	m.Rebuild()
	after := m.ReachableCount()

	fmt.Println()
	fmt.Printf("Reachable: %s -> %s (%+d)\n",
		humanize.Comma(int64(before)), humanize.Comma(int64(after)), after-before)
}

func cmdField(args []string) {
	fs := flag.NewFlagSet("field", flag.ExitOnError)
	radius := fs.Int("radius", 6, "Tiles to show around the center")
	center := fs.String("center", "", "Center tile as q,r (default first goal)")
	fs.Parse(args)

	_, m, _ := setup()
	defer logger.Sync()

	c := hex.Axial{}
	if goals := m.Goals(); len(goals) > 0 {
		c = goals[0]
	}
	if *center != "" {
		a, err := hex.ParseAxial(*center)
		if err != nil {
			fail(err)
		}
		c = a
	}

	fmt.Print(renderField(m, c, *radius))
	fmt.Fprintln(os.Stderr, "\nq e d c z a: next hop TopLeft TopRight Right BottomRight BottomLeft Left")
	fmt.Fprintln(os.Stderr, "* goal, # unreachable, blank outside terrain")
}

// renderField draws rows of direction glyphs, each row shifted half a tile
// per r so neighbours line up as they do on screen.
func renderField(m *world.Map, center hex.Axial, radius int) string {
	var b strings.Builder
	for dr := -radius; dr <= radius; dr++ {
		r := center.R + dr
		b.WriteString(strings.Repeat(" ", dr+radius))
		for dq := -radius; dq <= radius; dq++ {
			a := hex.NewAxial(center.Q+dq, r)
			switch d, ok := m.Direction(a); {
			case ok:
				b.WriteByte(d.Glyph())
			case tileExists(m, a):
				b.WriteByte('#')
			default:
				b.WriteByte(' ')
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func tileExists(m *world.Map, a hex.Axial) bool {
	_, ok := m.Tile(a)
	return ok
}

func cmdAgents(args []string) {
	fs := flag.NewFlagSet("agents", flag.ExitOnError)
	count := fs.Int("n", 0, "Number of agents (0 = config value)")
	fs.Parse(args)

	cfg, m, seed := setup()
	defer logger.Sync()

	n := cfg.Agents.Count
	if *count > 0 {
		n = *count
	}

	roster := agents.NewRoster(rand.New(rand.NewSource(seed)))
	if _, err := roster.Spawn(m, n); err != nil {
		fail(err)
	}

	start := make(map[*agents.Agent]hex.Axial, roster.Len())
	for _, a := range roster.Agents() {
		start[a] = a.Position()
	}

	report := roster.Plan(m)
	steps := roster.Run(cfg.Agents.MaxSteps)

	for _, a := range roster.Agents() {
		status := "arrived"
		if !a.Arrived(m) {
			status = "stuck"
		}
		fmt.Printf("%s  %-10v -> %-10v %s\n", a.ID.String()[:8], start[a], a.Position(), status)
	}

	fmt.Println()
	fmt.Printf("Agents:      %d planned, %d unreachable\n", report.Planned, len(report.Unreachable))
	fmt.Printf("Steps taken: %s\n", humanize.Comma(int64(steps)))
}

func cmdPick(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: hexmap pick <x> <y>")
		os.Exit(1)
	}
	x, errX := strconv.ParseFloat(args[0], 64)
	y, errY := strconv.ParseFloat(args[1], 64)
	if err := errors.Join(errX, errY); err != nil {
		fail(err)
	}

	_, m, _ := setup()
	defer logger.Sync()

	a := m.Layout().PixelToHex(x, y)
	tile, ok := m.Tile(a)
	if !ok {
		fmt.Printf("%v: outside terrain\n", a)
		return
	}

	px, py := m.Layout().ToPixel(a, tile.Height())
	fmt.Printf("Tile:      %v\n", a)
	fmt.Printf("Height:    %s\n", tile)
	fmt.Printf("Top face:  (%.0f, %.0f)\n", px, py)
	if d, ok := m.Direction(a); ok {
		fmt.Printf("Next hop:  %s\n", d)
	} else {
		fmt.Println("Next hop:  unreachable")
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("out", "", "Write to file instead of stdout")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := cfg.SaveTo(*out); err != nil {
			fail(err)
		}
		fmt.Printf("Saved: %s\n", *out)
		return
	}

	data, err := cfg.Marshal()
	if err != nil {
		fail(err)
	}
	os.Stdout.Write(data)
}

func cmdSchema(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	out := fs.String("out", "", "Write to file instead of stdout")
	fs.Parse(args)

	data, err := config.SchemaJSON()
	if err != nil {
		fail(err)
	}
	data = append(data, '\n')

	if *out != "" {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fail(err)
		}
		fmt.Printf("Saved: %s\n", *out)
		return
	}
	os.Stdout.Write(data)
}
