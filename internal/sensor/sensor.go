// Package sensor provides the telemetry reading appended to outbound frames.
package sensor

import (
	"bufio"
	"log"
	"os"
	"strings"
)

// DefaultPayload is reported when no sensor source is configured.
const DefaultPayload = "Sensor Payload"

// Static always returns the same payload. An empty payload reads as absent.
type Static string

// Read returns the fixed payload.
func (s Static) Read() (string, bool) {
	return string(s), s != ""
}

// File reads the first line of a file on every call, e.g. a sysfs
// temperature node such as /sys/class/thermal/thermal_zone0/temp.
type File struct {
	Path string

	lastErr string
}

// Read returns the trimmed first line. A missing file or empty line reads as
// absent; errors are logged once until the error changes.
func (f *File) Read() (string, bool) {
	line, err := firstLine(f.Path)
	if err != nil {
		if msg := err.Error(); msg != f.lastErr {
			log.Printf("sensor: %v", err)
			f.lastErr = msg
		}
		return "", false
	}
	f.lastErr = ""
	return line, line != ""
}

func firstLine(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	if !sc.Scan() {
		return "", sc.Err()
	}
	return strings.TrimSpace(sc.Text()), nil
}
