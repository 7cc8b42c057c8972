// Package patcher pins dashboard dependencies to versions known to build.
package patcher

import (
	"context"
	"fmt"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/logger"
	"github.com/oshokin/dashboard-builder/internal/repository/manifest"
)

// Run loads the manifest, applies the pin table and saves the result.
// The manifest is written even when nothing changed.
func Run(ctx context.Context, repo manifest.Repository, pins build.PinTable) ([]build.Change, error) {
	m, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	changes := m.ApplyPins(pins)

	for _, change := range changes {
		logger.InfoKV(ctx, "Pinned dependency",
			"section", change.Section,
			"package", change.Package,
			"from", change.Previous,
			"to", change.Pinned)

		pin := build.Pin{Package: change.Package, Constraint: change.Pinned}
		if change.Previous != change.Pinned && pin.Admits(change.Previous) {
			logger.DebugKV(ctx, "Replaced constraint already allowed the pinned version",
				"package", change.Package, "previous", change.Previous)
		}
	}

	if err = repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}

	logger.InfoKV(ctx, "Manifest updated with compatible versions", "changed", len(changes))

	return changes, nil
}
