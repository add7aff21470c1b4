//go:build windows

package executor

import "errors"

func diskUsage(path string) (free, total int64, err error) {
	return 0, 0, errors.New("disk usage not supported on this platform")
}
