package style

// Style property keys.
const (
	// PropFormat selects how a block's own head and wrapping render:
	// "plain", "markdown"/"md", or "xml".
	PropFormat = "format"
	// PropChildrenFormat overrides how a block's children render. The
	// value "list" turns children into bulleted items; a format name
	// forces that dialect on children that declare none of their own.
	PropChildrenFormat = "children-format"
	// PropBullet selects the list bullet: "number", "alpha", "roman",
	// "roman_upper", "*"/"astrix", or "-"/"dash".
	PropBullet = "bullet"
	// PropIndent sets the indent unit in spaces for nested content.
	PropIndent = "indent"
)

// Format values.
const (
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
	FormatXML      = "xml"
	FormatList     = "list"
)

// Bullet values.
const (
	BulletNumber     = "number"
	BulletAlpha      = "alpha"
	BulletRoman      = "roman"
	BulletRomanUpper = "roman_upper"
	BulletAsterisk   = "*"
	BulletDash       = "-"
)

// Props holds resolved style declarations for one block.
type Props map[string]any

// GetString returns the property as a string, or fallback when unset.
func (p Props) GetString(key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// GetInt returns the property as an int, or fallback when unset.
func (p Props) GetInt(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// Format returns the resolved block format, defaulting to plain.
func (p Props) Format() string {
	return p.GetString(PropFormat, FormatPlain)
}

// Clone returns a shallow copy.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// formatFamily lists the properties that never inherit from ancestors:
// each node's format is independent unless explicitly set.
var formatFamily = map[string]bool{
	PropFormat:         true,
	PropChildrenFormat: true,
	PropBullet:         true,
}

// Inheritable reports whether the property cascades down the tree.
func Inheritable(key string) bool {
	return !formatFamily[key]
}

// ParseTokens maps inline style tokens to props. Recognized tokens:
//
//	"plain", "md", "markdown", "xml"        → format
//	"list"                                  → children-format list, number bullet
//	"list:<bullet>"                         → children-format list, given bullet
//
// Unknown tokens are returned separately; the renderer surfaces them as
// undefined-style errors instead of silently falling back.
func ParseTokens(tokens []string) (Props, []string) {
	props := Props{}
	var unknown []string
	for _, tok := range tokens {
		switch {
		case tok == "plain":
			props[PropFormat] = FormatPlain
		case tok == "md" || tok == "markdown":
			props[PropFormat] = FormatMarkdown
		case tok == "xml":
			props[PropFormat] = FormatXML
		case tok == "list":
			props[PropChildrenFormat] = FormatList
			if _, ok := props[PropBullet]; !ok {
				props[PropBullet] = BulletNumber
			}
		case len(tok) > 5 && tok[:5] == "list:":
			props[PropChildrenFormat] = FormatList
			props[PropBullet] = normalizeBullet(tok[5:])
		default:
			unknown = append(unknown, tok)
		}
	}
	return props, unknown
}

func normalizeBullet(b string) string {
	switch b {
	case "astrix":
		return BulletAsterisk
	case "dash":
		return BulletDash
	default:
		return b
	}
}
