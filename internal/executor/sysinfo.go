package executor

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"
)

// SystemInfo reports host, user, working directory, OS, CPU, and disk
// figures. Fields that cannot be determined are omitted rather than failing
// the whole report.
func (e *Executor) SystemInfo(ctx context.Context) ToolResult {
	start := time.Now()

	var b strings.Builder
	if host, err := os.Hostname(); err == nil {
		fmt.Fprintf(&b, "host:     %s\n", host)
	}
	if u, err := user.Current(); err == nil {
		fmt.Fprintf(&b, "user:     %s\n", u.Username)
	}
	wd, err := os.Getwd()
	if err == nil {
		fmt.Fprintf(&b, "cwd:      %s\n", wd)
	}
	fmt.Fprintf(&b, "os:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "cpus:     %d\n", runtime.NumCPU())
	fmt.Fprintf(&b, "runtime:  %s\n", runtime.Version())

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	fmt.Fprintf(&b, "heap:     %s in use, %s reserved\n",
		formatSize(int64(ms.HeapAlloc)), formatSize(int64(ms.HeapSys)))

	if err == nil {
		if free, total, derr := diskUsage(wd); derr == nil {
			fmt.Fprintf(&b, "disk:     %s free of %s\n", formatSize(free), formatSize(total))
		}
	}

	return e.record(ctx, "system_info", "", ToolResult{
		Success:  true,
		Output:   strings.TrimRight(b.String(), "\n"),
		Duration: time.Since(start),
	})
}
