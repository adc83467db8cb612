package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Result carries lines read from a log file and the offset to resume from.
type Result struct {
	Lines  []string
	Offset int64
}

// Last returns up to limit trailing complete lines of the file at path. The
// returned offset points just past the last newline, so a line still being
// written is picked up whole by a later Since.
func Last(path string, limit int) (Result, error) {
	file, _, err := open(path)
	if err != nil || file == nil {
		return Result{}, err
	}
	defer file.Close()

	ring := make([]string, max(limit, 0))
	count, idx := 0, 0
	consumed, err := readLines(file, func(line string) {
		if limit <= 0 {
			return
		}
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return Result{}, err
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return Result{Lines: lines, Offset: consumed}, nil
}

// Since returns the complete lines appended after offset. If the file shrank
// below offset it was replaced, and reading restarts from the beginning.
func Since(path string, offset int64) (Result, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return Result{}, err
	}
	defer file.Close()

	if offset < 0 || offset > size {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	consumed, err := readLines(file, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Lines: lines, Offset: offset + consumed}, nil
}

// Follow polls path every interval and passes each line appended after offset
// to emit. It returns nil once ctx is cancelled.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := Since(path, offset)
		if err != nil {
			return err
		}
		for _, line := range result.Lines {
			emit(line)
		}
		offset = result.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// open returns a nil file without error when path does not exist.
func open(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("log path %q is a directory", path)
	}
	return file, info.Size(), nil
}

// readLines passes each newline-terminated line to fn and returns the number
// of bytes those lines occupied. A trailing fragment without a newline is
// left unread.
func readLines(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReader(r)
	var consumed int64
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return consumed, nil
			}
			return consumed, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		fn(strings.TrimRight(line, "\r\n"))
	}
}
