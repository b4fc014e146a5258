package curve

import "github.com/tanema/gween/ease"

var easings = map[string]ease.TweenFunc{
	"easeLinear":       ease.Linear,
	"easeStep":         step,
	"easeInQuad":       ease.InQuad,
	"easeOutQuad":      ease.OutQuad,
	"easeInOutQuad":    ease.InOutQuad,
	"easeInCubic":      ease.InCubic,
	"easeOutCubic":     ease.OutCubic,
	"easeInOutCubic":   ease.InOutCubic,
	"easeInQuart":      ease.InQuart,
	"easeOutQuart":     ease.OutQuart,
	"easeInOutQuart":   ease.InOutQuart,
	"easeInQuint":      ease.InQuint,
	"easeOutQuint":     ease.OutQuint,
	"easeInOutQuint":   ease.InOutQuint,
	"easeInSine":       ease.InSine,
	"easeOutSine":      ease.OutSine,
	"easeInOutSine":    ease.InOutSine,
	"easeInExpo":       ease.InExpo,
	"easeOutExpo":      ease.OutExpo,
	"easeInOutExpo":    ease.InOutExpo,
	"easeInCirc":       ease.InCirc,
	"easeOutCirc":      ease.OutCirc,
	"easeInOutCirc":    ease.InOutCirc,
	"easeInElastic":    ease.InElastic,
	"easeOutElastic":   ease.OutElastic,
	"easeInOutElastic": ease.InOutElastic,
	"easeInBack":       ease.InBack,
	"easeOutBack":      ease.OutBack,
	"easeInOutBack":    ease.InOutBack,
	"easeInBounce":     ease.InBounce,
	"easeOutBounce":    ease.OutBounce,
	"easeInOutBounce":  ease.InOutBounce,
}

// Holds the start value until the segment ends.
func step(t, b, c, d float32) float32 {
	if t < d {
		return b
	}
	return b + c
}

// Easing looks up an easing by its beatmap name.
func Easing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// apply maps progress in [0, 1] through fn. A nil fn is linear.
func apply(fn ease.TweenFunc, progress float64) float64 {
	if fn == nil {
		return progress
	}
	return float64(fn(float32(progress), 0, 1, 1))
}
