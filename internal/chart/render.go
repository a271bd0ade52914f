package chart

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Format is an output artifact type.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q: expected .html, .png or .svg", ext)
	}
}

// Render writes the layout in the given format.
func Render(w io.Writer, l Layout, format Format, o HTMLOptions) error {
	switch format {
	case FormatHTML:
		return RenderHTML(w, l, o)
	case FormatPNG, FormatSVG:
		return RenderImage(w, l, format)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Viewer displays a rendered artifact.
type Viewer func(path string) error

// OpenInSystemViewer hands path to the desktop's default application.
func OpenInSystemViewer(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", abs)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", abs)
	default:
		cmd = exec.Command("xdg-open", abs)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", abs, err)
	}
	return cmd.Process.Release()
}
