package cli

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/number-classifier/internal/model"
)

func sampleRecord() model.ClassificationRecord {
	return model.ClassificationRecord{
		Number:      big.NewInt(371),
		IsArmstrong: true,
		Parity:      model.ParityOdd,
		DigitSum:    11,
		Properties:  []model.Property{model.PropertyArmstrong, model.PropertyOdd},
	}
}

func TestRenderRecord(t *testing.T) {
	out := RenderRecord(sampleRecord(), "371 is a narcissistic number.")

	assert.Contains(t, out, "371")
	assert.Contains(t, out, "Armstrong")
	assert.Contains(t, out, "armstrong, odd")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "371 is a narcissistic number.")
}

func TestRenderRecord_NoFact(t *testing.T) {
	out := RenderRecord(sampleRecord(), "")
	assert.NotContains(t, out, "Fun fact")
}

func TestRenderTable(t *testing.T) {
	records := []model.ClassificationRecord{
		sampleRecord(),
		{
			Number:     big.NewInt(28),
			Parity:     model.ParityEven,
			DigitSum:   10,
			Properties: []model.Property{model.PropertyEven},
		},
	}

	out := RenderTable(records)
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, out, "Number")
	assert.Contains(t, out, "Digit sum")
	assert.Contains(t, out, "armstrong, odd")
	assert.Contains(t, out, "28")
}

func TestNewProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 10, "Scanning")

	require.NoError(t, bar.Add(10))
	assert.True(t, bar.IsFinished())
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), SuccessIcon+" done")
	assert.Contains(t, FormatError("bad input"), ErrorIcon+" bad input")
	assert.Contains(t, FormatWarning("Scan interrupted"), WarningIcon+" Scan interrupted")
	assert.Contains(t, FormatInfo("nothing found"), InfoIcon+" nothing found")
	assert.Contains(t, FormatTitle("Scan 1 to 10"), NumberIcon+" Scan 1 to 10")
	assert.Contains(t, SubtitleStyle.Render("Properties: prime"), "Properties: prime")
}
