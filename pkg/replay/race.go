package replay

import "strings"

// Canonical race names.
const (
	RaceZerg    = "Zerg"
	RaceTerran  = "Terran"
	RaceProtoss = "Protoss"
)

// localizedRaces maps the race names written by localized game clients,
// lower-cased, to the canonical name.
var localizedRaces = map[string]string{
	"zerg":     RaceZerg,
	"terran":   RaceTerran,
	"protoss":  RaceProtoss,
	"зерг":     RaceZerg,
	"терран":   RaceTerran,
	"протосс":  RaceProtoss,
	"저그":       RaceZerg,
	"테란":       RaceTerran,
	"프로토스":     RaceProtoss,
	"zergi":    RaceZerg,
	"terranie": RaceTerran,
	"protosi":  RaceProtoss,
	"异虫":       RaceZerg,
	"人类":       RaceTerran,
	"星灵":       RaceProtoss,
	"蟲族":       RaceZerg,
	"人類":       RaceTerran,
	"神族":       RaceProtoss,
	"terrano":  RaceTerran,
	"terraner": RaceTerran,
}

// CanonicalRace returns the canonical name of a possibly localized race
// name. Unknown names are returned unchanged.
func CanonicalRace(name string) string {
	if race, ok := localizedRaces[strings.ToLower(strings.TrimSpace(name))]; ok {
		return race
	}

	return name
}

// KnownRace reports whether name is one of the canonical race names.
func KnownRace(name string) bool {
	switch name {
	case RaceZerg, RaceTerran, RaceProtoss:
		return true
	default:
		return false
	}
}
