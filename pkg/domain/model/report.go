package model

import (
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/types"
)

// ReportRecord is the content of one incident report document.
// Records are produced once per terminal investigation branch and are
// never deduplicated.
type ReportRecord struct {
	Line        types.LineID
	Issue       string
	RootCause   string
	Action      string
	GeneratedAt time.Time
}
