// Package format holds the small pure formatting helpers shared by the
// storefront pages: prices in Indonesian rupiah and the aspect-ratio utility
// classes the image components rely on.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer is safe for concurrent use.
var printer = message.NewPrinter(language.Indonesian)

// Currency renders an amount of minor currency units as a rupiah price tag,
// e.g. 200000 -> "Rp 200.000".
func Currency(amount int64) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount))
}

// AspectRatioClass returns the utility class for an image of the given
// dimensions. Square images get the canned class, everything else an
// arbitrary-value class.
func AspectRatioClass(width, height int) string {
	if width == height {
		return "aspect-square"
	}
	return fmt.Sprintf("aspect-[%d/%d]", width, height)
}
