package version

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// linuxVersion matches Debian kernel source versions such as 5.10.0-8,
// 6.1~rc3-1~exp1 or 4.19.98-1+deb10u1 (epoch already stripped).
var linuxVersion = regexp.MustCompile(`^(?P<version>\d+\.\d+)` +
	`(?P<update>(?:\.\d+)?(?:-[a-z]+\d+)?)` +
	`(?:~(?P<modifier>.+?))?` +
	`(?:\.dfsg\.(?P<dfsg>\d+))?` +
	`-\d+(?:\.\d+)?` +
	`(?:(?P<experimental>~exp\d+)|(?P<security>[~+]deb\d+u\d+)?(?P<backports>~bpo\d+\+\d+)?|(?P<other>[^-+~]+))?$`)

// changelogHeading matches the first line of a Debian changelog entry.
var changelogHeading = regexp.MustCompile(`^(\S+) \(([^()\s]+)\)`)

// Linux is a parsed kernel source version.
type Linux struct {
	// Complete is the version as given.
	Complete string

	// Epoch is the Debian epoch, empty when absent.
	Epoch string

	// Upstream is the Debian upstream part (before the last '-').
	Upstream string

	// Revision is the Debian revision (after the last '-').
	Revision string

	// Version is the major.minor kernel series, e.g. 5.10.
	Version string

	// Modifier is the pre-release tag after '~', e.g. rc3.
	Modifier string

	// LinuxUpstream is Version, suffixed with -<Modifier> when present.
	LinuxUpstream string
}

// HasModifier reports whether the version is a pre-release.
func (l Linux) HasModifier() bool {
	return l.Modifier != ""
}

// ParseLinux parses a kernel source version.
func ParseLinux(source string) (Linux, error) {
	complete := strings.TrimSpace(source)
	l := Linux{Complete: complete}

	rest := complete
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		l.Epoch, rest = rest[:i], rest[i+1:]
	}
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 || i == len(rest)-1 {
		return Linux{}, gerrors.NewValidationError(
			fmt.Sprintf("invalid kernel version %q", source), "", "source",
			"expected <upstream>-<revision>, e.g. 5.10.0-8")
	}
	l.Upstream, l.Revision = rest[:i], rest[i+1:]

	m := linuxVersion.FindStringSubmatch(rest)
	if m == nil {
		return Linux{}, gerrors.NewValidationError(
			fmt.Sprintf("invalid kernel version %q", source), "", "source",
			"expected a Debian kernel version, e.g. 5.10.0-8")
	}
	l.Version = m[linuxVersion.SubexpIndex("version")]
	l.Modifier = m[linuxVersion.SubexpIndex("modifier")]
	l.LinuxUpstream = l.Version
	if l.Modifier != "" {
		l.LinuxUpstream += "-" + l.Modifier
	}
	return l, nil
}

// Changelog is the heading of the newest changelog entry.
type Changelog struct {
	Source  string
	Version string
}

// ParseChangelog reads the heading of the newest entry of a Debian changelog.
func ParseChangelog(r io.Reader) (Changelog, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := changelogHeading.FindStringSubmatch(line)
		if m == nil {
			return Changelog{}, gerrors.NewValidationError(
				"changelog does not start with an entry heading", "", "",
				"expected '<source> (<version>) <distribution>; urgency=<urgency>'")
		}
		return Changelog{Source: m[1], Version: m[2]}, nil
	}
	if err := scanner.Err(); err != nil {
		return Changelog{}, fmt.Errorf("reading changelog: %w", err)
	}
	return Changelog{}, gerrors.NewValidationError("changelog is empty", "", "", "")
}

// PackageVersion is the version stamped on every generated package:
// <kernel series>+<changelog version>.
func PackageVersion(linux Linux, changelog string) string {
	return linux.Version + "+" + changelog
}
