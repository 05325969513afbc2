package render

import (
	"fmt"
	"strings"

	"github.com/promptview/promptview/style"
)

// romanNumerals covers ordinals one through ten. Items past the table
// fall back to arabic numbering, same as alphabetic bullets past "z".
var romanNumerals = [...]string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x"}

// bulletItems prefixes each item with its bullet. Continuation lines of
// a multi-line item are aligned under the first character after the
// bullet, so the item reads as one visual unit.
func bulletItems(items []string, bullet string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		prefix := bulletPrefix(bullet, i+1)
		out[i] = prefix + hangLines(item, len(prefix))
	}
	return out
}

// bulletPrefix renders the 1-based bullet for one item. Unrecognized
// bullet strings are used verbatim, which is how literal markers like
// "->" get through.
func bulletPrefix(bullet string, idx int) string {
	switch bullet {
	case "", style.BulletNumber:
		return fmt.Sprintf("%d. ", idx)
	case style.BulletAlpha:
		if idx >= 1 && idx <= 26 {
			return fmt.Sprintf("%c. ", 'a'+idx-1)
		}
		return fmt.Sprintf("%d. ", idx)
	case style.BulletRoman, style.BulletRomanUpper:
		if idx >= 1 && idx <= len(romanNumerals) {
			numeral := romanNumerals[idx-1]
			if bullet == style.BulletRomanUpper {
				numeral = strings.ToUpper(numeral)
			}
			return numeral + ". "
		}
		return fmt.Sprintf("%d. ", idx)
	case style.BulletAsterisk:
		return "* "
	case style.BulletDash:
		return "- "
	default:
		return bullet + " "
	}
}

// hangLines indents every line after the first by width spaces.
func hangLines(item string, width int) string {
	lines := strings.Split(item, "\n")
	if len(lines) == 1 {
		return item
	}
	pad := strings.Repeat(" ", width)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
