package suggest

import "strings"

var labels = [3]string{"OPCIÓN A:", "OPCIÓN B:", "OPCIÓN C:"}

// SplitOptions extracts the text following each option label. A segment
// runs until the next "OPCIÓN" marker or the end of the text. Missing
// labels produce a fixed fallback message.
func SplitOptions(text string) (a, b, c string) {
	return extract(text, labels[0]), extract(text, labels[1]), extract(text, labels[2])
}

func extract(text, label string) string {
	i := strings.Index(text, label)
	if i < 0 {
		return "No se pudo generar la " + label
	}
	rest := text[i+len(label):]
	if j := strings.Index(rest, "OPCIÓN"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
