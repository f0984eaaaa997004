// Package track defines the contract shared by timeline trackers and the
// driver that feeds them a replay's event stream.
package track

import (
	"strings"

	"github.com/Sumatoshi-tech/skilltracker/pkg/replay"
)

// Kind identifies a tracker implementation.
type Kind string

// Tracker kinds.
const (
	KindLarvae   Kind = "larvae"
	KindDrones   Kind = "drones"
	KindInjects  Kind = "injects"
	KindUpgrades Kind = "upgrades"
)

// Consumer receives replay events in time order, one call per event.
// Events a consumer does not care about must be ignored without error.
type Consumer interface {
	Consume(ev replay.Event) error
}

// Tracker is a per-player consumer that accumulates a timeline.
type Tracker interface {
	Consumer

	Kind() Kind
	Title() string
	Player() string
}

// Sampler exposes a tracker's ordered samples. Samples may be read at any
// point; partial results are well defined.
type Sampler[S any] interface {
	Samples() []S
}

// Subsidiary is a tracker without a timeline of its own. Its data is laid
// over the charts of the primary trackers it declares compatible.
type Subsidiary interface {
	Tracker

	CanShareWith(other Tracker) bool
}

// PlayerMatcher decides whether an event's player name refers to the
// tracked player.
type PlayerMatcher func(tracked, candidate string) bool

// PrefixMatch accepts candidates starting with the tracked name. Replay
// readers may decorate names (clan tags stripped differently, suffixes), so
// this is the default. A tracked name that is a prefix of the opponent's
// name yields false positives.
func PrefixMatch(tracked, candidate string) bool {
	return tracked != "" && strings.HasPrefix(candidate, tracked)
}

// ExactMatch accepts only identical names.
func ExactMatch(tracked, candidate string) bool {
	return tracked != "" && tracked == candidate
}

// Owner binds a tracked player name to a matching policy.
type Owner struct {
	Name  string
	Match PlayerMatcher
}

// NewOwner returns an Owner using PrefixMatch when match is nil.
func NewOwner(name string, match PlayerMatcher) Owner {
	if match == nil {
		match = PrefixMatch
	}

	return Owner{Name: name, Match: match}
}

// Owns reports whether candidate is the tracked player.
// Neutral units (empty owner) are never owned.
func (o Owner) Owns(candidate string) bool {
	if candidate == "" {
		return false
	}

	match := o.Match
	if match == nil {
		match = PrefixMatch
	}

	return match(o.Name, candidate)
}
