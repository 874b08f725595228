package model

// DayType labels the study intensity planned for a calendar date.
type DayType string

const (
	DayWork          DayType = "work"
	DayOff           DayType = "off"
	DayRevision      DayType = "revision"
	DayIntensive     DayType = "intensive"
	DayIntensivePost DayType = "intensive-post"
	DayTrip          DayType = "trip"
	DayTripEnd       DayType = "trip-end"
	DayRest          DayType = "rest"
	DayExamEve       DayType = "exam-eve"
	DayLight         DayType = "light"
)

// ValidDayTypes are the allowed day types.
var ValidDayTypes = map[DayType]bool{
	DayWork:          true,
	DayOff:           true,
	DayRevision:      true,
	DayIntensive:     true,
	DayIntensivePost: true,
	DayTrip:          true,
	DayTripEnd:       true,
	DayRest:          true,
	DayExamEve:       true,
	DayLight:         true,
}

// Valid reports whether d is one of the known day types.
func (d DayType) Valid() bool {
	return ValidDayTypes[d]
}

// Intensity is an informal load rank, 0 (free) to 5 (heaviest).
func (d DayType) Intensity() int {
	switch d {
	case DayOff, DayRest:
		return 0
	case DayLight:
		return 1
	case DayRevision:
		return 2
	case DayWork, DayTrip, DayTripEnd:
		return 3
	case DayIntensivePost:
		return 4
	case DayIntensive, DayExamEve:
		return 5
	}
	return 0
}

// IsCatchUpSlot reports whether missed work may be moved onto a day of this type.
func (d DayType) IsCatchUpSlot() bool {
	return d == DayOff || d == DayRevision
}

// DayScheduleEntry is the template entry for one calendar date.
type DayScheduleEntry struct {
	Date      string   `json:"date" yaml:"-"`
	Topics    []string `json:"topics" yaml:"topics"`
	DayType   DayType  `json:"day_type" yaml:"type"`
	Resources []string `json:"resources,omitempty" yaml:"resources"`
}
