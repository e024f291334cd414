package tilegen

// OptionType tells the editor which widget edits an option.
type OptionType uint8

const (
	OptionFloat OptionType = iota
	OptionInt
	OptionBool
	OptionSwitch
	OptionVec2
	OptionColor
)

// Option declares one editable parameter of a node. Options are consumed by
// the editor only; evaluation reads Values with the same defaults.
type Option struct {
	// Key is the Values key (vector options use suffixed components).
	Key string `json:"key"`

	// Label is the display label.
	Label string `json:"label"`

	// Type selects the editor widget.
	Type OptionType `json:"type"`

	// Min and Max bound scalar options.
	Min float32 `json:"min"`
	Max float32 `json:"max"`

	// Default holds the default value; vectors use the leading components.
	Default [4]float32 `json:"default"`

	// Choices names the states of a Switch option.
	Choices []string `json:"choices,omitempty"`

	// Trigger names a Switch option key; this option is shown only while
	// that switch is on.
	Trigger string `json:"trigger,omitempty"`
}

// OptionGroup is a named set of options shown together.
type OptionGroup struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Parameter keys shared by evaluators and option declarations.
const (
	keyMode         = "mode"
	keyOffset       = "offset"
	keyRotation     = "rotation"
	keyPixelate     = "pixelate"
	keyWidth        = "width"
	keyHeight       = "height"
	keyRounding     = "rounding"
	keyRadius       = "radius"
	keyP0           = "p0"
	keyP1           = "p1"
	keyP2           = "p2"
	keyScale        = "scale"
	keyDomain       = "domain"
	keyStrength     = "strength"
	keySeed         = "seed"
	keyNoise        = "noise"
	keyTiles        = "tiles"
	keyEnabled      = "enabled"
	keyModifierMode = "modifier_mode"
	keyColor        = "color"
	keySize         = "size"
	keyRatio        = "ratio"
	keyBevel        = "bevel"
	keyGap          = "gap"
	keyBrickOffset  = "brick_offset"
	keyMissing      = "missing"
	keyWobble       = "wobble"
	keySmoothness   = "smoothness"
	keyRounded      = "rounded"
	keyThickness    = "thickness"
	keyDepth        = "depth"
)

func floatOpt(key, label string, lo, hi, def float32) Option {
	return Option{Key: key, Label: label, Type: OptionFloat, Min: lo, Max: hi, Default: [4]float32{def}}
}

func intOpt(key, label string, lo, hi, def float32) Option {
	return Option{Key: key, Label: label, Type: OptionInt, Min: lo, Max: hi, Default: [4]float32{def}}
}

func boolOpt(key, label string, def bool) Option {
	o := Option{Key: key, Label: label, Type: OptionBool, Max: 1}
	if def {
		o.Default[0] = 1
	}
	return o
}

func switchOpt(key, label string, def int, choices ...string) Option {
	return Option{
		Key: key, Label: label, Type: OptionSwitch,
		Max: float32(len(choices) - 1), Default: [4]float32{float32(def)}, Choices: choices,
	}
}

func vec2Opt(key, label string, def Vec2) Option {
	return Option{Key: key, Label: label, Type: OptionVec2, Max: 1, Default: [4]float32{def.X, def.Y}}
}

func colorOpt(key, label string, def Color) Option {
	return Option{Key: key, Label: label, Type: OptionColor, Max: 1, Default: def.Array()}
}

func transformGroup() OptionGroup {
	return OptionGroup{Name: "Transform", Options: []Option{
		vec2Opt(keyOffset, "Offset", defaultOffset),
		floatOpt(keyRotation, "Rotation", -360, 360, 0),
		switchOpt(keyPixelate, "Pixelate", 0, "None", "Before", "After"),
	}}
}

func modifierGroup() OptionGroup {
	return OptionGroup{Name: "Modifier", Options: []Option{
		switchOpt(keyModifierMode, "Modifier Mode", 0, "Add", "Mix"),
	}}
}

func domainGroup(scale float32) OptionGroup {
	return OptionGroup{Name: "Domain", Options: []Option{
		floatOpt(keyScale, "Scale", 0.01, 64, scale),
		vec2Opt(keyDomain, "Scale X/Y", V2(1, 1)),
		floatOpt(keyRotation, "Rotation", -360, 360, 0),
		boolOpt(keyPixelate, "Pixelate", false),
		floatOpt(keyStrength, "Strength", -4, 4, defaultStrength),
	}}
}

func brickGroup(size float32) OptionGroup {
	return OptionGroup{Name: "Bricks", Options: []Option{
		floatOpt(keySize, "Size", 1, 64, size),
		floatOpt(keyRatio, "Ratio", 0.1, 8, defaultRatio),
		floatOpt(keyBevel, "Bevel", 0, 0.5, defaultBevel),
		floatOpt(keyGap, "Gap", 0, 0.5, defaultGap),
		floatOpt(keyRounding, "Rounding", 0, 0.5, defaultBrickRounding),
		boolOpt(keyBrickOffset, "Offset", true),
	}}
}

func patternGroup() OptionGroup {
	return OptionGroup{Name: "Pattern", Options: []Option{
		colorOpt(keyColor, "Background", defaultPatternBackground),
		floatOpt(keyWobble, "Wobble", 0, 1, 0),
		intOpt(keySeed, "Seed", 0, 65535, 0),
		floatOpt(keyMissing, "Missing", 0, 1, 0),
	}}
}

// DefaultOptions returns the option declarations for a kind. The returned
// slice is freshly allocated.
func DefaultOptions(kind Kind) []OptionGroup {
	switch kind {
	case KindShapeBox:
		return []OptionGroup{
			{Name: "Box", Options: []Option{
				switchOpt(keyMode, "Mode", 0, "Standalone", "Merge"),
				floatOpt(keyWidth, "Width", 0, 2, 1),
				floatOpt(keyHeight, "Height", 0, 2, 1),
				floatOpt(keyRounding, "Rounding", 0, 1, 0),
			}},
			transformGroup(),
		}
	case KindShapeDisk:
		return []OptionGroup{
			{Name: "Disk", Options: []Option{
				switchOpt(keyMode, "Mode", 0, "Standalone", "Merge"),
				floatOpt(keyRadius, "Radius", 0, 2, 1),
			}},
			transformGroup(),
		}
	case KindShapeGround:
		return []OptionGroup{
			{Name: "Ground", Options: []Option{
				switchOpt(keyMode, "Mode", 0, "Standalone", "Merge"),
				vec2Opt(keyP0, "Start", defaultGroundP0),
				vec2Opt(keyP1, "Control", defaultGroundP1),
				vec2Opt(keyP2, "End", defaultGroundP2),
			}},
			transformGroup(),
		}
	case KindModifierNoise:
		return []OptionGroup{
			domainGroup(defaultNoiseScale),
			{Name: "Noise", Options: []Option{intOpt(keySeed, "Seed", 0, 65535, 0)}},
		}
	case KindModifierTiledNoise:
		return []OptionGroup{
			domainGroup(1),
			{Name: "Noise", Options: []Option{
				switchOpt(keyNoise, "Noise", 0, "Value", "Gradient", "Perlin"),
				intOpt(keyTiles, "Tiles", 1, 64, defaultTiles),
				intOpt(keySeed, "Seed", 0, 65535, 0),
			}},
		}
	case KindDecoratorColor:
		return []OptionGroup{
			{Name: "Color", Options: []Option{
				boolOpt(keyEnabled, "Enabled", true),
				colorOpt(keyColor, "Color", White),
			}},
			modifierGroup(),
		}
	case KindDecoratorTilesAndBricks:
		return []OptionGroup{
			{Name: "Color", Options: []Option{
				boolOpt(keyEnabled, "Enabled", true),
				colorOpt(keyColor, "Color", White),
			}},
			brickGroup(defaultDecoratorBrickSize),
			modifierGroup(),
		}
	case KindPatternTilesAndBricks:
		return []OptionGroup{brickGroup(defaultPatternBrickSize), patternGroup()}
	case KindPatternVoronoi:
		return []OptionGroup{
			{Name: "Voronoi", Options: []Option{
				floatOpt(keySize, "Size", 1, 64, defaultCellSize),
				floatOpt(keySmoothness, "Smoothness", 0, 1, defaultSmoothness),
				boolOpt(keyRounded, "Rounded", true),
				floatOpt(keyThickness, "Thickness", 0, 0.5, defaultThickness),
			}},
			patternGroup(),
		}
	case KindPatternWorley:
		return []OptionGroup{
			{Name: "Worley", Options: []Option{
				floatOpt(keySize, "Size", 1, 64, defaultCellSize),
				floatOpt(keyDepth, "Depth", 0, 16, 0),
				switchOpt(keyMode, "Mode", 0, "F1", "F2", "Edges"),
			}},
			patternGroup(),
		}
	case KindPatternTrabeculum:
		return []OptionGroup{
			{Name: "Trabeculum", Options: []Option{
				floatOpt(keySize, "Size", 1, 64, defaultCellSize),
				floatOpt(keyThickness, "Thickness", 0, 1, defaultVeinThickness),
			}},
			patternGroup(),
		}
	default:
		return nil
	}
}
