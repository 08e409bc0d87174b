package diff_test

import (
	"slices"
	"testing"

	"github.com/scandiweb/configdiff/pkg/dataset"
	"github.com/scandiweb/configdiff/pkg/svc/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func datasetGenerator() *rapid.Generator[*dataset.Dataset] {
	return rapid.Custom(func(t *rapid.T) *dataset.Dataset {
		values := rapid.MapOf(
			rapid.SampledFrom([]string{"default_0", "websites_1", "stores_1", "stores_2"}),
			rapid.MapOf(
				rapid.StringMatching(`[a-c]/[a-c]`),
				rapid.SampledFrom([]string{"", "0", "1", "yes"}),
			),
		).Draw(t, "values")

		return dataset.FromMap(values)
	})
}

type cell struct {
	local  diff.Value
	remote diff.Value
}

func rowsByPath(report diff.ScopeReport) map[string]cell {
	cells := make(map[string]cell, len(report.Rows))
	for _, row := range report.Rows {
		cells[row.Path] = cell{local: row.Local, remote: row.Remote}
	}

	return cells
}

func TestProperty_SelfDiffIsIdentical(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		data := datasetGenerator().Draw(t, "data")

		result := diff.NewEngine().ComputeDiff(data, data)

		assert.Len(t, result.Reports, data.ScopeCount())

		for _, report := range result.Reports {
			assert.True(t, report.Identical(), "scope %s should be identical", report.Scope.Key)
		}
	})
}

func TestProperty_SwappingSidesSwapsValues(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		local := datasetGenerator().Draw(t, "local")
		remote := datasetGenerator().Draw(t, "remote")
		engine := diff.NewEngine()

		forward := engine.ComputeDiff(local, remote)
		backward := engine.ComputeDiff(remote, local)

		require.Len(t, backward.Reports, len(forward.Reports))

		for _, report := range forward.Reports {
			mirrored, ok := backward.Report(report.Scope.Key)
			require.True(t, ok, "scope %s missing from swapped diff", report.Scope.Key)

			forwardCells := rowsByPath(report)
			backwardCells := rowsByPath(mirrored)

			require.Len(t, backwardCells, len(forwardCells))

			for path, forwardCell := range forwardCells {
				backwardCell, found := backwardCells[path]
				require.True(t, found, "path %s missing from swapped diff", path)
				assert.Equal(t, forwardCell.local, backwardCell.remote)
				assert.Equal(t, forwardCell.remote, backwardCell.local)
			}
		}
	})
}

func TestProperty_RowsAreOrderedAndDiffer(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		local := datasetGenerator().Draw(t, "local")
		remote := datasetGenerator().Draw(t, "remote")

		result := diff.NewEngine().ComputeDiff(local, remote)

		for _, report := range result.Reports {
			var localDriven, remoteOnly []string

			for _, row := range report.Rows {
				assert.NotEqual(t, row.Local, row.Remote)

				if row.Local.IsPresent() {
					assert.Empty(t, remoteOnly, "local-driven row %s after remote-only rows", row.Path)

					localDriven = append(localDriven, row.Path)

					continue
				}

				remoteOnly = append(remoteOnly, row.Path)
			}

			assert.True(t, slices.IsSorted(localDriven))
			assert.True(t, slices.IsSorted(remoteOnly))
		}
	})
}

func TestProperty_OneSidedPathsAreMarkedAbsent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		local := datasetGenerator().Draw(t, "local")
		remote := datasetGenerator().Draw(t, "remote")

		result := diff.NewEngine().ComputeDiff(local, remote)

		for _, report := range result.Reports {
			localScope, _ := local.Scope(report.Scope.Key)
			remoteScope, _ := remote.Scope(report.Scope.Key)
			cells := rowsByPath(report)

			for _, entry := range localScope.Entries() {
				if _, ok := remoteScope.Get(entry.Path); !ok {
					assert.Equal(t, diff.Absent, cells[entry.Path].remote)
				}
			}

			for _, entry := range remoteScope.Entries() {
				if _, ok := localScope.Get(entry.Path); !ok {
					assert.Equal(t, diff.Absent, cells[entry.Path].local)
				}
			}
		}
	})
}

func TestProperty_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		local := datasetGenerator().Draw(t, "local")
		remote := datasetGenerator().Draw(t, "remote")
		workers := rapid.IntRange(2, 8).Draw(t, "workers")

		sequential := diff.NewEngine().ComputeDiff(local, remote)
		parallel := diff.NewEngine(diff.WithWorkers(workers)).ComputeDiff(local, remote)

		assert.Equal(t, sequential, parallel)
	})
}
