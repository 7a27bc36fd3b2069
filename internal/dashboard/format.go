package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatBRL renders a value as "R$ 1,500,000.00".
func FormatBRL(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

func formatScore(v float64) string {
	return printer.Sprintf("%.2f", v)
}
