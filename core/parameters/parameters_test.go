package parameters

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	assert.Equal(t, uint8(150), p.Threshold)
	assert.Equal(t, 5, p.MinSize)
	assert.Equal(t, 2, p.Padding)
	assert.Equal(t, 1.2, p.HFactor)
	assert.Equal(t, 0.5, p.VFactor)
	assert.Equal(t, 0.5, p.AreaFactor)
	assert.Equal(t, 0.004, p.Epsilon)
	assert.Equal(t, 3, p.Blur)
	assert.Equal(t, 2, p.Close)
	assert.Equal(t, 1, p.Iterations)
	assert.False(t, p.Overwrite)
}

func TestFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.config")
	defer teardown()
	//
	conf := testconfig.Conf{
		KeyThreshold:  "120",
		KeyMinSize:    7,
		KeyEpsilon:    "0.5%",
		KeyVFactor:    "0.6",
		KeyWorkers:    "4",
		KeyFillRule:   " EvenOdd ",
		KeyOverwrite:  true,
		KeyBlur:       "4",
		KeyHFactor:    "not-a-number",
		KeyIterations: "-1",
	}
	p := FromConfig(conf)
	assert.Equal(t, uint8(120), p.Threshold)
	assert.Equal(t, 7, p.MinSize)
	assert.InDelta(t, 0.005, p.Epsilon, 1e-12)
	assert.Equal(t, 0.6, p.VFactor)
	assert.Equal(t, 4, p.Workers)
	assert.Equal(t, "evenodd", p.FillRule)
	assert.True(t, p.Overwrite)
	assert.Equal(t, 5, p.Blur, "even blur sizes are bumped to the next odd size")
	assert.Equal(t, 1.2, p.HFactor, "malformed values leave the default")
	assert.Equal(t, 1, p.Iterations, "negative values leave the default")
}

func TestFromNilConfig(t *testing.T) {
	assert.Equal(t, Defaults(), FromConfig(nil))
}

func TestThresholdClamp(t *testing.T) {
	p := FromConfig(testconfig.Conf{KeyThreshold: 300})
	assert.Equal(t, uint8(255), p.Threshold)
}
