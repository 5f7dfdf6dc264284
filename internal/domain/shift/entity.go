package shift

// Type identifies one of the three fixed shift profiles.
type Type string

const (
	TypeDay    Type = "day"
	TypeNight  Type = "night"
	TypeSunday Type = "sunday"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDay, TypeNight, TypeSunday:
		return true
	}
	return false
}

// Profile is a named schedule template. Hours are decimal hours from
// midnight; an End beyond 24 means the shift crosses midnight.
type Profile struct {
	ID          Type
	Start       float64
	End         float64
	LunchStart  float64
	LunchEnd    float64
	TargetHours float64
	HasLunch    bool
}

// CrossesMidnight reports whether checkout can land on the next day.
func (p Profile) CrossesMidnight() bool {
	return p.End > 24
}
