//go:build !linux && !darwin && !freebsd && !netbsd && !windows

package reader

import "time"

func birthTime(string) (time.Time, bool) {
	return time.Time{}, false
}
