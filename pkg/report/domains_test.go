package report_test

import (
	"testing"

	"github.com/dispatchlab/crtbox/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomains(t *testing.T) {
	tbl := sampleTable(t)
	d := tbl.Domains()

	t.Run("supervisors sorted distinct without nulls", func(t *testing.T) {
		assert.Equal(t, []string{"Alicia", "Marcus"}, d.Supervisors)
	})

	t.Run("crates sorted distinct without nulls", func(t *testing.T) {
		assert.Equal(t, []float64{8, 12}, d.Crates)
	})

	t.Run("date bounds", func(t *testing.T) {
		assert.Equal(t, day(t, "2025-03-01"), d.MinDate)
		assert.Equal(t, day(t, "2025-03-03"), d.MaxDate)
	})
}

func TestDomainsEmptyTable(t *testing.T) {
	d := report.Table{}.Domains()

	assert.Empty(t, d.Supervisors)
	assert.Empty(t, d.Crates)
	assert.True(t, d.MinDate.IsZero())
	assert.True(t, d.MaxDate.IsZero())
}

func TestDefaultFilter(t *testing.T) {
	tbl := sampleTable(t)
	f := report.DefaultFilter(tbl)

	assert.Equal(t, day(t, "2025-03-01"), f.From)
	assert.Equal(t, day(t, "2025-03-03"), f.To)
	assert.Equal(t, []string{"Alicia", "Marcus"}, f.Supervisors)
	assert.Equal(t, []float64{8, 12}, f.Crates)

	require.NoError(t, f.Validate())
}
