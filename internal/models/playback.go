package models

// RepeatMode is persisted as 0 (off), 1 (all) or 2 (one).
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (r RepeatMode) String() string {
	switch r {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Next cycles off → all → one → off.
func (r RepeatMode) Next() RepeatMode {
	return (r.Valid() + 1) % 3
}

// Valid clamps unknown values to [RepeatOff].
func (r RepeatMode) Valid() RepeatMode {
	if r < RepeatOff || r > RepeatOne {
		return RepeatOff
	}
	return r
}

// ParseRepeatMode accepts "off", "all", "one" or their numeric forms.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch s {
	case "off", "0":
		return RepeatOff, true
	case "all", "1":
		return RepeatAll, true
	case "one", "2":
		return RepeatOne, true
	}
	return RepeatOff, false
}

// TransportState is the playback transport.
type TransportState int

const (
	Stopped TransportState = iota
	Playing
	Paused
)

func (t TransportState) String() string {
	switch t {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}
