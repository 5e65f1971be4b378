package domain

type Mode string

const (
	ModeBMC    Mode = "bmc"
	ModeDesign Mode = "design"
)

// DefaultMode is the mode a session starts in when none is requested.
const DefaultMode = ModeBMC

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether m is a known session mode.
func (m Mode) Valid() bool {
	return m == ModeBMC || m == ModeDesign
}
