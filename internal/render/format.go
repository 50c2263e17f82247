package render

import (
	"fmt"
	"strings"
)

// NumeralJS translates a numeral-style tick format into a JS label formatter
// for the backend. Supported forms: "0" plain, "0,0" thousands separators,
// ".00" fixed decimals, ".[00]" optional decimals, a "%" suffix that scales
// by 100, and a "$" prefix.
func NumeralJS(format string) string {
	prefix := ""
	suffix := ""
	rest := format
	if strings.HasPrefix(rest, "$") {
		prefix = "$"
		rest = rest[1:]
	}
	percent := strings.HasSuffix(rest, "%")
	if percent {
		suffix = "%"
		rest = strings.TrimSuffix(rest, "%")
	}
	thousands := strings.Contains(rest, ",")

	decimals := 0
	optional := false
	if i := strings.Index(rest, "."); i >= 0 {
		frac := rest[i+1:]
		if strings.HasPrefix(frac, "[") && strings.HasSuffix(frac, "]") {
			optional = true
			frac = frac[1 : len(frac)-1]
		}
		decimals = strings.Count(frac, "0")
	}

	var b strings.Builder
	b.WriteString("function (value) {\n")
	if percent {
		b.WriteString("  value = value * 100;\n")
	}
	fmt.Fprintf(&b, "  var s = value.toFixed(%d);\n", decimals)
	if optional && decimals > 0 {
		b.WriteString("  s = s.replace(/\\.?0+$/, '');\n")
	}
	if thousands {
		b.WriteString("  var parts = s.split('.');\n")
		b.WriteString("  parts[0] = parts[0].replace(/\\B(?=(\\d{3})+(?!\\d))/g, ',');\n")
		b.WriteString("  s = parts.join('.');\n")
	}
	fmt.Fprintf(&b, "  return %q + s + %q;\n", prefix, suffix)
	b.WriteString("}")
	return b.String()
}

// strftime directives supported by the backend's time axis templates.
var strftimeTemplates = strings.NewReplacer(
	"%Y", "{yyyy}",
	"%y", "{yy}",
	"%m", "{MM}",
	"%d", "{dd}",
	"%H", "{HH}",
	"%M", "{mm}",
	"%S", "{ss}",
	"%b", "{MMM}",
	"%B", "{MMMM}",
	"%a", "{eee}",
	"%A", "{eeee}",
)

// DatetimeTemplate translates a strftime-style datetime tick format into the
// backend's time axis label template.
func DatetimeTemplate(format string) string {
	return strftimeTemplates.Replace(format)
}
