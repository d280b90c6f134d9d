package ports

import (
	"context"

	"crossval/domain/physics"
)

// ProfilerPort produces per-cell physics profiles for a video source. The
// pixel/audio measurement itself lives outside this core; implementations
// must honor the grid geometry they are given so cell spans line up with the
// engine's SecondsPerCell.
type ProfilerPort interface {
	ExtractProfiles(ctx context.Context, source string, grid physics.GridConfig) ([]physics.Profile, error)
}
