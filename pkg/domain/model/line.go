package model

import (
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// LineProfile describes a production line's contamination context.
// Profiles are loaded once at startup and never mutated.
type LineProfile struct {
	ID           types.LineID
	Product      string
	Flow         string // ordered stage list, free text (e.g. "Sterilizer -> Aseptic Tank -> Filler")
	LastCleaning string // last CIP cycle, contextual evidence only
	RiskCategory types.RiskCategory
	Threshold    float64 // alert threshold for the mean contamination count
}

// Validate checks if the LineProfile is valid
func (p *LineProfile) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid line ID")
	}
	if p.Product == "" {
		return goerr.New("line product is required", goerr.V("id", p.ID))
	}
	if p.Flow == "" {
		return goerr.New("line process flow is required", goerr.V("id", p.ID))
	}
	if !p.RiskCategory.IsValid() {
		return goerr.New("invalid risk category", goerr.V("id", p.ID), goerr.V("category", p.RiskCategory))
	}
	if p.Threshold < 0 {
		return goerr.New("line threshold must not be negative", goerr.V("id", p.ID), goerr.V("threshold", p.Threshold))
	}
	return nil
}

// ErrLineNotFound is returned when a line is not found in the registry
var ErrLineNotFound = goerr.New("line not found")

// LineRegistry holds the line profiles known to the process.
// It preserves declaration order and is read-only after startup.
type LineRegistry struct {
	entries map[types.LineID]*LineProfile
	order   []types.LineID
}

// NewLineRegistry creates a new empty LineRegistry
func NewLineRegistry() *LineRegistry {
	return &LineRegistry{
		entries: make(map[types.LineID]*LineProfile),
	}
}

// Register adds a line profile to the registry
func (r *LineRegistry) Register(profile *LineProfile) {
	if _, exists := r.entries[profile.ID]; !exists {
		r.order = append(r.order, profile.ID)
	}
	r.entries[profile.ID] = profile
}

// Get retrieves a line profile by ID
func (r *LineRegistry) Get(lineID types.LineID) (*LineProfile, error) {
	profile, ok := r.entries[lineID]
	if !ok {
		return nil, goerr.Wrap(ErrLineNotFound, "line not found",
			goerr.V("line_id", lineID))
	}
	return profile, nil
}

// List returns all registered line profiles in declaration order
func (r *LineRegistry) List() []*LineProfile {
	result := make([]*LineProfile, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}
