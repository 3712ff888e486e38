package tincss

import "math"

// ColorSpace identifies the coordinate system a Color's Params are
// expressed in.
type ColorSpace string

const (
	SpaceSRGB       ColorSpace = "srgb"
	SpaceSRGBLinear ColorSpace = "srgb-linear"
	SpaceDisplayP3  ColorSpace = "display-p3"
	SpaceA98RGB     ColorSpace = "a98-rgb"
	SpaceProPhoto   ColorSpace = "prophoto-rgb"
	SpaceRec2020    ColorSpace = "rec2020"
	SpaceHSL        ColorSpace = "hsl"
	SpaceHWB        ColorSpace = "hwb"
	SpaceLab        ColorSpace = "lab"
	SpaceLCH        ColorSpace = "lch"
	SpaceOKLab      ColorSpace = "oklab"
	SpaceOKLCH      ColorSpace = "oklch"
	SpaceXYZ        ColorSpace = "xyz"
	SpaceXYZD50     ColorSpace = "xyz-d50"
	SpaceXYZD65     ColorSpace = "xyz-d65"
)

// ChannelArg records one channel's original argument for later
// interpolation: None is true when the channel was the keyword
// "none", in which case Value is meaningless (conversion treats it as
// 0) but the "none"-ness must survive for a downstream interpolator.
type ChannelArg struct {
	Value float64
	None  bool
}

// Color is a fully resolved CSS Color Level 4 value. FunctionName is
// the lowercase name of the function that produced it ("rgb" for
// rgb/rgba, "hsl" for hsl/hsla, "" for keyword and hex forms). Space
// is the coordinate system Params is expressed in; Params holds
// sRGB-equivalent channels for the legacy spaces (hsl, hwb convert to
// srgb but keep Space set to their own name, matching the source
// token's declared space for interpolation) and the function's own
// coordinates for every other space. Args
// preserves the original per-channel arguments (including "none")
// for interpolation; Alpha is always clamped to [0, 1].
type Color struct {
	FunctionName string
	Space        ColorSpace
	Params       [3]float64
	Args         [3]ChannelArg
	Alpha        float64
}

// ParseColor parses input as a CSS Color Level 4 value. It returns
// (nil, false) if input is not a valid color, (nil, true) for the
// currentcolor keyword, and (color, false) for every other value,
// including named keywords, transparent, hex colors and every
// functional color form.
func ParseColor(input Input) (color *Color, isCurrentColor bool) {
	var token Node
	switch v := input.(type) {
	case TextInput:
		vals := significantOnly(Tokenize(string(v), TokenizeOptions{SkipComments: true}))
		if len(vals) != 1 {
			return nil, false
		}
		token = vals[0]
	default:
		vals := significantOnly(input.toValues(true, false))
		if len(vals) != 1 {
			return nil, false
		}
		token = vals[0]
	}
	return parseColorToken(token)
}

func parseColorToken(token Node) (*Color, bool) {
	switch v := token.(type) {
	case Ident:
		if v.Lower == "currentcolor" {
			return nil, true
		}
		if v.Lower == "transparent" {
			return &Color{Space: SpaceSRGB, Params: [3]float64{0, 0, 0}, Alpha: 0}, false
		}
		if rgb, ok := namedColors[v.Lower]; ok {
			return &Color{Space: SpaceSRGB, Params: [3]float64{
				float64(rgb[0]) / 255, float64(rgb[1]) / 255, float64(rgb[2]) / 255,
			}, Alpha: 1}, false
		}
		return nil, false

	case Hash:
		c, ok := parseHexColor(v.Value)
		if !ok {
			return nil, false
		}
		return c, false

	case Function:
		c := parseColorFunction(v)
		return c, false
	}
	return nil, false
}

func hexDigitPair(s string, i int) (float64, bool) {
	v1, ok1 := hexValue(rune(s[i]))
	v2, ok2 := hexValue(rune(s[i+1]))
	if !ok1 || !ok2 {
		return 0, false
	}
	return float64(v1<<4|v2) / 255, true
}

func parseHexColor(s string) (*Color, bool) {
	expand := func(c byte) (float64, bool) {
		v, ok := hexValue(rune(c))
		if !ok {
			return 0, false
		}
		return float64(v<<4|v) / 255, true
	}
	switch len(s) {
	case 3, 4:
		var ch [4]float64
		for i := 0; i < len(s); i++ {
			v, ok := expand(s[i])
			if !ok {
				return nil, false
			}
			ch[i] = v
		}
		alpha := 1.0
		if len(s) == 4 {
			alpha = ch[3]
		}
		return &Color{Space: SpaceSRGB, Params: [3]float64{ch[0], ch[1], ch[2]}, Alpha: alpha}, true
	case 6, 8:
		var ch [4]float64
		n := len(s) / 2
		for i := 0; i < n; i++ {
			v, ok := hexDigitPair(s, i*2)
			if !ok {
				return nil, false
			}
			ch[i] = v
		}
		alpha := 1.0
		if n == 4 {
			alpha = ch[3]
		}
		return &Color{Space: SpaceSRGB, Params: [3]float64{ch[0], ch[1], ch[2]}, Alpha: alpha}, true
	default:
		return nil, false
	}
}

// channelArgs splits a function's argument tokens into channel
// operands per the legacy-comma / space / space-with-alpha grammars
// of CSS Color 4 section 4.2. The returned slice always has 3 or 4
// elements (channels, then an optional alpha token); the last element
// is nil when no alpha was supplied.
func channelArgs(tokens []Node) []Node {
	toks := significantOnly(tokens)
	n := len(toks)
	if n%2 == 1 && n >= 3 {
		isLegacy := true
		for i := 1; i < n; i += 2 {
			if !IsLiteralEq(toks[i], ",") {
				isLegacy = false
				break
			}
		}
		if isLegacy {
			out := make([]Node, 0, (n+1)/2)
			for i := 0; i < n; i += 2 {
				out = append(out, toks[i])
			}
			switch len(out) {
			case 3:
				return append(out, nil)
			case 4:
				return out
			}
			return nil
		}
	}
	if n == 3 {
		return []Node{toks[0], toks[1], toks[2], nil}
	}
	if n == 4 {
		return []Node{toks[0], toks[1], toks[2], toks[3]}
	}
	if n == 5 && IsLiteralEq(toks[3], "/") {
		return []Node{toks[0], toks[1], toks[2], toks[4]}
	}
	return nil
}

func parseAlpha(tok Node) (float64, bool) {
	if tok == nil {
		return 1, true
	}
	switch v := tok.(type) {
	case Number:
		return math.Min(1, math.Max(0, v.Value)), true
	case Percentage:
		return math.Min(1, math.Max(0, v.Value/100)), true
	case Ident:
		if v.Lower == "none" {
			return 0, true
		}
	}
	return 0, false
}

// parseHue implements the hue-parser of CSS Color 4 section 4.2: a
// normalized turn fraction from a bare number (degrees), an angle
// dimension, or the "none" keyword.
func parseHue(tok Node) (float64, bool) {
	switch v := tok.(type) {
	case Number:
		return v.Value / 360, true
	case Dimension:
		switch v.LowerUnit {
		case "deg":
			return v.Value / 360, true
		case "grad":
			return v.Value / 400, true
		case "rad":
			return v.Value / (2 * math.Pi), true
		case "turn":
			return v.Value, true
		}
		return 0, false
	case Ident:
		if v.Lower == "none" {
			return 0, true
		}
	}
	return 0, false
}

// numberOrPercent reads a channel that accepts a bare number or a
// percentage scaled by percentScale (e.g. 100 for 0-100%, 255 for
// 0-255). "none" reports (0, true) with none=true.
func numberOrPercent(tok Node, percentScale float64) (value float64, none bool, ok bool) {
	switch v := tok.(type) {
	case Number:
		return v.Value, false, true
	case Percentage:
		return v.Value / 100 * percentScale, false, true
	case Ident:
		if v.Lower == "none" {
			return 0, true, true
		}
	}
	return 0, false, false
}

func hueChannel(tok Node) (value float64, none bool, ok bool) {
	if id, isIdent := tok.(Ident); isIdent && id.Lower == "none" {
		return 0, true, true
	}
	h, ok := parseHue(tok)
	return h, false, ok
}

func parseColorFunction(fn Function) *Color {
	name := fn.LowerName
	if name == "color" {
		return parseColorFunctionSpace(fn)
	}

	args := channelArgs(fn.Arguments)
	if args == nil {
		return nil
	}
	alpha, ok := parseAlpha(args[3])
	if !ok {
		return nil
	}

	switch name {
	case "rgb", "rgba":
		return parseRGB(args[:3], alpha)
	case "hsl", "hsla":
		return parseHSL(args[:3], alpha)
	case "hwb":
		return parseHWB(args[:3], alpha)
	case "lab":
		return parseLab(args[:3], alpha)
	case "lch":
		return parseLCH(args[:3], alpha)
	case "oklab":
		return parseOKLab(args[:3], alpha)
	case "oklch":
		return parseOKLCH(args[:3], alpha)
	}
	return nil
}

func argTriplet(vals [3]float64, nones [3]bool) [3]ChannelArg {
	var out [3]ChannelArg
	for i := range out {
		out[i] = ChannelArg{Value: vals[i], None: nones[i]}
	}
	return out
}

func parseRGB(ch []Node, alpha float64) *Color {
	var vals [3]float64
	var nones [3]bool
	for i, tok := range ch {
		v, none, ok := numberOrPercent(tok, 255)
		if !ok {
			return nil
		}
		if !none {
			v /= 255
		}
		vals[i], nones[i] = v, none
	}
	return &Color{
		FunctionName: "rgb",
		Space:        SpaceSRGB,
		Params:       vals,
		Args:         argTriplet(vals, nones),
		Alpha:        alpha,
	}
}

func parseHSL(ch []Node, alpha float64) *Color {
	h, hNone, ok := hueChannel(ch[0])
	if !ok {
		return nil
	}
	s, sNone, ok := numberOrPercent(ch[1], 1)
	if !ok {
		return nil
	}
	l, lNone, ok := numberOrPercent(ch[2], 1)
	if !ok {
		return nil
	}
	r, g, b := hslToRGB(h, s, l)
	return &Color{
		FunctionName: "hsl",
		Space:        SpaceHSL,
		Params:       [3]float64{r, g, b},
		Args:         argTriplet([3]float64{h, s, l}, [3]bool{hNone, sNone, lNone}),
		Alpha:        alpha,
	}
}

func parseHWB(ch []Node, alpha float64) *Color {
	h, hNone, ok := hueChannel(ch[0])
	if !ok {
		return nil
	}
	w, wNone, ok := numberOrPercent(ch[1], 1)
	if !ok {
		return nil
	}
	bl, blNone, ok := numberOrPercent(ch[2], 1)
	if !ok {
		return nil
	}

	var r, g, b float64
	if w+bl >= 1 {
		gray := w / (w + bl)
		r, g, b = gray, gray, gray
	} else {
		r, g, b = hslToRGB(h, 1, 0.5)
		r = r*(1-w-bl) + w
		g = g*(1-w-bl) + w
		b = b*(1-w-bl) + w
	}
	return &Color{
		FunctionName: "hwb",
		Space:        SpaceHWB,
		Params:       [3]float64{r, g, b},
		Args:         argTriplet([3]float64{h, w, bl}, [3]bool{hNone, wNone, blNone}),
		Alpha:        alpha,
	}
}

// hslToRGB converts hue (turn fraction, any real value), saturation
// and lightness (both typically 0..1) to sRGB channels, per the
// classic HSL->RGB construction (Python's colorsys.hls_to_rgb with
// args reordered to h, s, l).
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h -= math.Floor(h)
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueToRGB(m1, m2, h+1.0/3), hueToRGB(m1, m2, h), hueToRGB(m1, m2, h-1.0/3)
}

func hueToRGB(m1, m2, h float64) float64 {
	h -= math.Floor(h)
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

func parseLab(ch []Node, alpha float64) *Color {
	l, lNone, ok := numberOrPercentRange(ch[0], 100, 100)
	if !ok {
		return nil
	}
	a, aNone, ok := numberOrPercentRange(ch[1], 125, 100)
	if !ok {
		return nil
	}
	b, bNone, ok := numberOrPercentRange(ch[2], 125, 100)
	if !ok {
		return nil
	}
	return &Color{
		FunctionName: "lab",
		Space:        SpaceLab,
		Params:       [3]float64{l, a, b},
		Args:         argTriplet([3]float64{l, a, b}, [3]bool{lNone, aNone, bNone}),
		Alpha:        alpha,
	}
}

func parseLCH(ch []Node, alpha float64) *Color {
	l, lNone, ok := numberOrPercentRange(ch[0], 100, 100)
	if !ok {
		return nil
	}
	c, cNone, ok := numberOrPercentRange(ch[1], 150, 100)
	if !ok {
		return nil
	}
	h, hNone, ok := hueChannel(ch[2])
	if !ok {
		return nil
	}
	return &Color{
		FunctionName: "lch",
		Space:        SpaceLCH,
		Params:       [3]float64{l, c, h * 360},
		Args:         argTriplet([3]float64{l, c, h * 360}, [3]bool{lNone, cNone, hNone}),
		Alpha:        alpha,
	}
}

func parseOKLab(ch []Node, alpha float64) *Color {
	l, lNone, ok := numberOrPercentRange(ch[0], 1, 100)
	if !ok {
		return nil
	}
	a, aNone, ok := numberOrPercentRange(ch[1], 0.4, 100)
	if !ok {
		return nil
	}
	b, bNone, ok := numberOrPercentRange(ch[2], 0.4, 100)
	if !ok {
		return nil
	}
	return &Color{
		FunctionName: "oklab",
		Space:        SpaceOKLab,
		Params:       [3]float64{l, a, b},
		Args:         argTriplet([3]float64{l, a, b}, [3]bool{lNone, aNone, bNone}),
		Alpha:        alpha,
	}
}

func parseOKLCH(ch []Node, alpha float64) *Color {
	l, lNone, ok := numberOrPercentRange(ch[0], 1, 100)
	if !ok {
		return nil
	}
	c, cNone, ok := numberOrPercentRange(ch[1], 0.4, 100)
	if !ok {
		return nil
	}
	h, hNone, ok := hueChannel(ch[2])
	if !ok {
		return nil
	}
	return &Color{
		FunctionName: "oklch",
		Space:        SpaceOKLCH,
		Params:       [3]float64{l, c, h * 360},
		Args:         argTriplet([3]float64{l, c, h * 360}, [3]bool{lNone, cNone, hNone}),
		Alpha:        alpha,
	}
}

// numberOrPercentRange reads a channel whose bare-number form is used
// as-is and whose percentage form is scaled so that 100% maps to
// percentFull (e.g. lab's a/b channels: a number is used directly,
// 100% maps to +-125).
func numberOrPercentRange(tok Node, percentFull, percentBasis float64) (value float64, none bool, ok bool) {
	switch v := tok.(type) {
	case Number:
		return v.Value, false, true
	case Percentage:
		return v.Value / percentBasis * percentFull, false, true
	case Ident:
		if v.Lower == "none" {
			return 0, true, true
		}
	}
	return 0, false, false
}

// predefinedRGBSpaces maps the RGB-like color(space ...) names to
// their ColorSpace; the xyz variants are in predefinedXYZSpaces.
var predefinedRGBSpaces = map[string]ColorSpace{
	"srgb":         SpaceSRGB,
	"srgb-linear":  SpaceSRGBLinear,
	"display-p3":   SpaceDisplayP3,
	"a98-rgb":      SpaceA98RGB,
	"prophoto-rgb": SpaceProPhoto,
	"rec2020":      SpaceRec2020,
}

var predefinedXYZSpaces = map[string]ColorSpace{
	"xyz":     SpaceXYZ,
	"xyz-d50": SpaceXYZD50,
	"xyz-d65": SpaceXYZD65,
}

func parseColorFunctionSpace(fn Function) *Color {
	toks := significantOnly(fn.Arguments)
	if len(toks) == 0 {
		return nil
	}
	spaceIdent, ok := toks[0].(Ident)
	if !ok {
		return nil
	}
	space := spaceIdent.Lower

	rest := channelArgs(toks[1:])
	if rest == nil {
		return nil
	}
	alpha, ok := parseAlpha(rest[3])
	if !ok {
		return nil
	}

	var vals [3]float64
	var nones [3]bool
	for i := 0; i < 3; i++ {
		v, none, ok := numberOrPercent(rest[i], 1)
		if !ok {
			return nil
		}
		vals[i], nones[i] = v, none
	}

	if sp, ok := predefinedRGBSpaces[space]; ok {
		return &Color{FunctionName: "color", Space: sp, Params: vals, Args: argTriplet(vals, nones), Alpha: alpha}
	}
	if sp, ok := predefinedXYZSpaces[space]; ok {
		return &Color{FunctionName: "color", Space: sp, Params: vals, Args: argTriplet(vals, nones), Alpha: alpha}
	}
	return nil
}
