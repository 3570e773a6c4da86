/*
Package parameters holds the tunable values of the glyph pipeline.

Every value has a default matching the behavior of the segmentation and
vectorization tools; clients may override single values from an application
configuration (see FromConfig).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package parameters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.config'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.config")
}

// Configuration keys understood by FromConfig.
const (
	KeyThreshold  = "segment.threshold"
	KeyMinSize    = "segment.minsize"
	KeyPadding    = "segment.padding"
	KeyHFactor    = "merge.hfactor"
	KeyVFactor    = "merge.vfactor"
	KeyAreaFactor = "merge.areafactor"
	KeyBucketing  = "merge.bucketing"
	KeyBlur       = "vectorize.blur"
	KeySigma      = "vectorize.sigma"
	KeyClose      = "vectorize.close"
	KeyIterations = "vectorize.iterations"
	KeyEpsilon    = "vectorize.epsilon"
	KeyWorkers    = "vectorize.workers"
	KeyFill       = "svg.fill"
	KeyFillRule   = "svg.fillrule"
	KeyOverwrite  = "store.overwrite"
)

// Parameters is a set of pipeline parameters.
type Parameters struct {
	Threshold  uint8   // fixed binarization: foreground iff luma < Threshold
	MinSize    int     // contours narrower or lower than this are scan noise
	Padding    int     // margin around a cropped glyph, in pixels
	HFactor    float64 // center distance limit, relative to the wider box
	VFactor    float64 // vertical gap limit, relative to the taller box
	AreaFactor float64 // satellite area limit, relative to the main box
	Bucketing  int     // contour count above which the merger buckets by x
	Blur       int     // odd Gaussian kernel size before adaptive thresholding
	Sigma      float64 // Gaussian sigma
	Close      int     // elliptical closing kernel size
	Iterations int     // closing iterations
	Epsilon    float64 // polygon tolerance, relative to a contour's perimeter
	Workers    int     // concurrent vectorization workers
	Fill       string  // SVG fill color
	FillRule   string  // "" (painter's order), "evenodd" or "nonzero"
	Overwrite  bool    // allow the glyph store to replace existing files
}

// Defaults returns the default parameter set.
func Defaults() *Parameters {
	return &Parameters{
		Threshold:  150,
		MinSize:    5,
		Padding:    2,
		HFactor:    1.2,
		VFactor:    0.5,
		AreaFactor: 0.5,
		Bucketing:  64,
		Blur:       3,
		Sigma:      0.8,
		Close:      2,
		Iterations: 1,
		Epsilon:    0.004,
		Workers:    1,
		Fill:       "black",
		FillRule:   "",
		Overwrite:  false,
	}
}

// FromConfig returns the default parameters, overridden by every key set in
// conf. Malformed values are reported and ignored. conf may be nil.
func FromConfig(conf schuko.Configuration) *Parameters {
	p := Defaults()
	if conf == nil {
		return p
	}
	t := int(p.Threshold)
	setInt(conf, KeyThreshold, &t, 1)
	if t > 255 {
		tracer().Errorf("config %s out of range, using 255", KeyThreshold)
		t = 255
	}
	p.Threshold = uint8(t)
	setInt(conf, KeyMinSize, &p.MinSize, 0)
	setInt(conf, KeyPadding, &p.Padding, 0)
	setInt(conf, KeyBucketing, &p.Bucketing, 0)
	setInt(conf, KeyBlur, &p.Blur, 1)
	setInt(conf, KeyClose, &p.Close, 1)
	setInt(conf, KeyIterations, &p.Iterations, 0)
	setInt(conf, KeyWorkers, &p.Workers, 1)
	setFloat(conf, KeyHFactor, &p.HFactor)
	setFloat(conf, KeyVFactor, &p.VFactor)
	setFloat(conf, KeyAreaFactor, &p.AreaFactor)
	setFloat(conf, KeySigma, &p.Sigma)
	setFloat(conf, KeyEpsilon, &p.Epsilon)
	if conf.IsSet(KeyFill) {
		p.Fill = conf.GetString(KeyFill)
	}
	if conf.IsSet(KeyFillRule) {
		p.FillRule = strings.ToLower(strings.TrimSpace(conf.GetString(KeyFillRule)))
	}
	if conf.IsSet(KeyOverwrite) {
		p.Overwrite = conf.GetBool(KeyOverwrite)
	}
	if p.Blur%2 == 0 {
		tracer().Infof("blur kernel size must be odd, using %d", p.Blur+1)
		p.Blur++
	}
	return p
}

func setInt(conf schuko.Configuration, key string, n *int, min int) {
	if !conf.IsSet(key) {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(conf.GetString(key)))
	if err != nil || v < min {
		tracer().Errorf("config %s: cannot use %q", key, conf.GetString(key))
		return
	}
	*n = v
}

func setFloat(conf schuko.Configuration, key string, f *float64) {
	if !conf.IsSet(key) {
		return
	}
	s := strings.TrimSpace(conf.GetString(key))
	percent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || v < 0 {
		tracer().Errorf("config %s: cannot use %q", key, s)
		return
	}
	if percent {
		v /= 100
	}
	*f = v
}
