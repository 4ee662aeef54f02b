package energy

import (
	"math"
	"sync"
	"time"
)

// National installed capacity in MW used by the generation simulation.
const (
	installedSolarMW   = 72000
	installedWindMW    = 42000
	installedHydroMW   = 51000
	installedBiomassMW = 10000
)

// GenerationSnapshot is a simulated national generation mix, in MW.
type GenerationSnapshot struct {
	Timestamp    time.Time `json:"timestamp"`
	SolarMW      int       `json:"solarMw"`
	WindMW       int       `json:"windMw"`
	HydroMW      int       `json:"hydroMw"`
	BiomassMW    int       `json:"biomassMw"`
	TotalMW      int       `json:"totalMw"`
	GridLoadMW   int       `json:"gridLoadMw"`
	RenewablePct float64   `json:"renewablePct"`
}

// SimulateGeneration produces a plausible generation mix for now. Solar
// follows the daylight curve of now's hour; wind and grid load draw one
// value each from rnd.
func SimulateGeneration(now time.Time, rnd RandomSource) GenerationSnapshot {
	hour := now.Hour()
	var sun float64
	if hour >= 6 && hour <= 18 {
		sun = math.Sin(float64(hour-6) / 12 * math.Pi)
	}
	windMultiplier := 0.5 + 0.5*rnd.Float64()

	s := GenerationSnapshot{
		Timestamp:  now,
		SolarMW:    int(math.Floor(installedSolarMW * sun * 0.8)),
		WindMW:     int(math.Floor(installedWindMW * windMultiplier * 0.7)),
		HydroMW:    int(math.Floor(installedHydroMW * 0.6)),
		BiomassMW:  int(math.Floor(installedBiomassMW * 0.75)),
		GridLoadMW: int(math.Floor(150000 + 50000*rnd.Float64())),
	}
	s.TotalMW = s.SolarMW + s.WindMW + s.HydroMW + s.BiomassMW
	s.RenewablePct = math.Round(float64(s.TotalMW)/float64(s.GridLoadMW)*1000) / 10
	return s
}

// GenerationBoard holds the latest simulated snapshot for concurrent readers.
type GenerationBoard struct {
	mu     sync.RWMutex
	latest GenerationSnapshot
	zone   *time.Location
	rnd    RandomSource
	now    func() time.Time
}

func NewGenerationBoard(zone *time.Location, rnd RandomSource) *GenerationBoard {
	if zone == nil {
		zone = time.UTC
	}
	if rnd == nil {
		rnd = DefaultRandom()
	}
	b := &GenerationBoard{zone: zone, rnd: rnd, now: time.Now}
	b.Refresh()
	return b
}

// Refresh replaces the snapshot with a new simulation and returns it.
func (b *GenerationBoard) Refresh() GenerationSnapshot {
	snap := SimulateGeneration(b.now().In(b.zone), b.rnd)
	b.mu.Lock()
	b.latest = snap
	b.mu.Unlock()
	return snap
}

func (b *GenerationBoard) Latest() GenerationSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}
