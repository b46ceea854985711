package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/hotdeck/pkg/evaluate"
	"github.com/wdm0006/hotdeck/pkg/experiment"
	"github.com/wdm0006/hotdeck/pkg/logging"
)

func sample() []experiment.Result {
	return []experiment.Result{
		{Dataset: "V1_missing01", Strategy: "mean", Eval: &evaluate.Result{MAE: 0.5, Compared: 8}, Elapsed: 12 * time.Millisecond},
		{Dataset: "V1_missing01", Strategy: "hotdeck", Elapsed: 1500 * time.Microsecond},
	}
}

func TestResultLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, logging.Discard())
	for _, res := range sample() {
		require.NoError(t, r.Result(res))
	}
	want := "MAE_V1_missing01_mean = 0.5\n" +
		"Runtime_V1_missing01_mean = 12 ms\n" +
		"Runtime_V1_missing01_hotdeck = 1 ms\n"
	assert.Equal(t, want, buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, nil).Table(sample())
	out := buf.String()
	assert.Contains(t, out, "DATASET")
	assert.Contains(t, out, "RUNTIME (MS)")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// border, header, border, two rows, border
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[3], "0.5")
	assert.Contains(t, lines[4], "-")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "4", FormatFloat(4))
	assert.Equal(t, "0.3333333333333333", FormatFloat(1.0/3.0))
}
