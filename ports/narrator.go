package ports

import (
	"context"

	"crossval/domain/verbal"
)

// NarratorPort parses a vision-language model's free-text response into a
// structured verbalization profile. Prompting and parsing are outside this
// core; the engine only sees the structured result.
type NarratorPort interface {
	ParseResponse(ctx context.Context, response string) (verbal.Profile, error)
}
