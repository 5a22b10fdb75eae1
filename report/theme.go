package report

import (
	"embed"
	"fmt"
)

//go:embed style/*.css
var themes embed.FS

// Theme returns the stylesheet of a built-in theme.
func Theme(name string) (string, error) {
	content, err := themes.ReadFile("style/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("unknown theme %q: %w", name, err)
	}
	return string(content), nil
}
