package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const workbookTimeout = 15 * time.Second

// CheckWorkbook verifies that the workbook answers a ping.
func CheckWorkbook(ctx context.Context, backend string, book Pinger, openErr error) Result {
	name := "Workbook (" + backend + ")"
	if openErr != nil {
		return Result{Name: name, Detail: fmt.Sprintf("open failed (%v)", openErr)}
	}
	if book == nil {
		return Result{Name: name, Detail: "not opened"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, workbookTimeout)
	defer cancel()

	if err := book.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizePingError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}

// CheckSpreadsheetID verifies a spreadsheet is configured.
func CheckSpreadsheetID(id string) Result {
	const name = "Spreadsheet ID"
	if strings.TrimSpace(id) == "" {
		return Result{Name: name, Detail: "missing (set sheets.spreadsheet_id or TVLOG_SPREADSHEET_ID)"}
	}
	return Result{Name: name, Passed: true, Detail: id}
}

// CheckFileReadable verifies that path is an existing readable file. An empty
// path fails, since the credentials lookup has already applied its fallbacks.
func CheckFileReadable(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizePingError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "ping timed out (workbook unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ping timed out (workbook unreachable)"
	}
	return err.Error()
}
