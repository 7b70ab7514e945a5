package phpcheck

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

const (
	minMajor = 7
	minMinor = 2
)

var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Check verifies that the PHP interpreter named by interpreter (argv form,
// e.g. ["php", "-n"]) runs and is at least 7.2, the floor for both
// phpDocumentor 3 and Composer 2. Returns the reported version on success.
func Check(ctx context.Context, interpreter []string) (string, error) {
	if len(interpreter) == 0 {
		return "", errors.New("no PHP interpreter configured")
	}

	args := append(append([]string{}, interpreter[1:]...), "-r", "echo PHP_VERSION;")
	out, err := exec.CommandContext(ctx, interpreter[0], args...).Output()
	if err != nil {
		return "", fmt.Errorf("PHP interpreter %q not usable (%v). Install PHP >= %d.%d or set php.command", interpreter[0], err, minMajor, minMinor)
	}

	version := strings.TrimSpace(string(out))
	matches := versionRe.FindStringSubmatch(version)
	if len(matches) < 3 {
		return version, nil // can't parse, assume ok
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])

	if major < minMajor || (major == minMajor && minor < minMinor) {
		return "", fmt.Errorf("PHP version %d.%d is too old. Install PHP >= %d.%d", major, minor, minMajor, minMinor)
	}

	return version, nil
}
