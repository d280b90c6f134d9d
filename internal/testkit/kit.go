// Package testkit provides seeded synthetic fixtures and fake ports for
// exercising the validation pipeline without a real extractor or model.
package testkit

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"crossval/domain/physics"
	"crossval/domain/verbal"
)

// Kit generates deterministic synthetic input pairs. The same seed always
// produces the same profiles.
type Kit struct {
	rng  *rand.Rand
	grid physics.GridConfig
}

// NewKit creates a fixture kit with the default grid geometry.
func NewKit(seed int64) *Kit {
	return &Kit{
		rng:  rand.New(rand.NewSource(seed)),
		grid: physics.DefaultGridConfig(),
	}
}

// NewKitWithGrid creates a fixture kit with explicit grid geometry.
func NewKitWithGrid(seed int64, grid physics.GridConfig) *Kit {
	return &Kit{
		rng:  rand.New(rand.NewSource(seed)),
		grid: grid,
	}
}

// Grid returns the kit's grid geometry.
func (k *Kit) Grid() physics.GridConfig {
	return k.grid
}

// normal draws from N(mu, sigma) through the inverse CDF so draws stay tied
// to the kit's seeded source.
func (k *Kit) normal(mu, sigma float64) float64 {
	u := k.rng.Float64()
	if u == 0 {
		// Quantile(0) is -Inf
		u = 1e-12
	}
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	return dist.Quantile(u)
}

// PhysicsProfiles generates n contiguous cells; motionRatio of them carry
// motion with intensities drawn around meanIntensity.
func (k *Kit) PhysicsProfiles(n int, motionRatio, meanIntensity float64) []physics.Profile {
	profiles := make([]physics.Profile, n)
	for i := 0; i < n; i++ {
		p := physics.Profile{
			CellIndex: i,
			Timestamp: k.grid.TimestampAt(i),
		}
		if k.rng.Float64() < motionRatio {
			p.HasMotion = true
			p.Intensity = clamp01(k.normal(meanIntensity, 0.1))
			p.Fringe = physics.Fringe{
				Magnitude: clamp01(k.normal(0.5, 0.2)),
				AngleDeg:  k.rng.Float64() * 360,
			}
		}
		profiles[i] = p
	}
	return profiles
}

// StillProfiles generates n contiguous cells with no motion at all.
func (k *Kit) StillProfiles(n int) []physics.Profile {
	return k.PhysicsProfiles(n, 0, 0)
}

// MatchingVerbalization builds a profile that agrees with the physics:
// chronological mentions at motion cells, one motion claim per motion cell
// echoing the measured angle with jitterDeg of noise.
func (k *Kit) MatchingVerbalization(profiles []physics.Profile, jitterDeg float64) verbal.Profile {
	var mentions []verbal.Mention
	var claims []verbal.MotionClaim
	var intensities []float64

	for _, p := range profiles {
		if !p.HasMotion {
			continue
		}
		intensities = append(intensities, p.Intensity)
		mentions = append(mentions, verbal.Mention{Seconds: p.Timestamp})

		claim := verbal.MotionClaim{
			Timestamp:    p.Timestamp + k.rng.Float64()*k.grid.Interval,
			ClaimsMotion: true,
		}
		if p.Fringe.HasDirection() {
			angle := wrap360(p.Fringe.AngleDeg + k.normal(0, jitterDeg))
			claim.DirectionAngle = &angle
		}
		claims = append(claims, claim)
	}

	willingness := 0.0
	if len(intensities) > 0 {
		sum := 0.0
		for _, v := range intensities {
			sum += v
		}
		willingness = clamp01(sum / float64(len(intensities)))
	}

	return verbal.Profile{
		Willingness: willingness,
		Mentions:    mentions,
		Claims:      claims,
	}
}

// SilentVerbalization builds a profile for a model that said nothing.
func (k *Kit) SilentVerbalization() verbal.Profile {
	return verbal.Profile{Willingness: 0}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func wrap360(a float64) float64 {
	for a < 0 {
		a += 360
	}
	for a >= 360 {
		a -= 360
	}
	return a
}
