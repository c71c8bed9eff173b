package cadence

import (
	"log"
	"strings"

	"github.com/tanema/gween/ease"
)

// DefaultEasing is used when an easing name is unknown.
const DefaultEasing = "easeOutQuad"

var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"easeinquad":     ease.InQuad,
	"easeoutquad":    ease.OutQuad,
	"easeinoutquad":  ease.InOutQuad,
	"easeincubic":    ease.InCubic,
	"easeoutcubic":   ease.OutCubic,
	"easeinoutcubic": ease.InOutCubic,
	"easeinsine":     ease.InSine,
	"easeoutsine":    ease.OutSine,
	"easeinoutsine":  ease.InOutSine,
	"easeinexpo":     ease.InExpo,
	"easeoutexpo":    ease.OutExpo,
	"easeinoutexpo":  ease.InOutExpo,
	"easeinback":     ease.InBack,
	"easeoutback":    ease.OutBack,
	"easeinoutback":  ease.InOutBack,
	"easeoutbounce":  ease.OutBounce,
	"easeoutelastic": ease.OutElastic,
}

// Easing resolves an easing name such as "easeOutExpo" (case-insensitive)
// to a gween easing function. Unknown names log and fall back to
// DefaultEasing.
func Easing(name string) ease.TweenFunc {
	if fn, ok := LookupEasing(name); ok {
		return fn
	}
	log.Printf("cadence: unknown easing %q, using %s", name, DefaultEasing)
	return easings[strings.ToLower(DefaultEasing)]
}

// LookupEasing is like Easing but reports whether the name was known.
func LookupEasing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[strings.ToLower(name)]
	return fn, ok
}
