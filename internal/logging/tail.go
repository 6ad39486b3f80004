package logging

import (
	"fmt"
	"io"
	"os"
	"time"
)

// TailLog tails the audit file to a writer, optionally following.
func TailLog(w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer file.Close()

	// If n > 0, seek to show only last n lines
	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(w, file)
	}

	// Just dump the rest of the file
	_, err = io.Copy(w, file)
	return err
}

// tailSeek seeks to a position that shows approximately the last n lines.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 100

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	if size < avgLineLength*int64(n) {
		// File is small enough, just read from start
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	// Seek back from end
	offset := size - int64(n*avgLineLength)
	if offset < 0 {
		offset = 0
	}
	_, err = file.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}

	// Discard partial first line
	buf := make([]byte, 1)
	_, err = file.Read(buf)
	if err != nil {
		return err
	}
	for {
		if buf[0] == '\n' {
			break
		}
		_, err := file.Read(buf)
		if err != nil {
			break
		}
	}

	return nil
}

// tailFollow follows a file like tail -f.
func tailFollow(w io.Writer, file *os.File) error {
	// First, copy existing content
	if _, err := io.Copy(w, file); err != nil {
		return err
	}

	// Then follow for new content
	for {
		_, err := io.Copy(w, file)
		if err != nil {
			return err
		}

		// Wait briefly before checking for more data
		time.Sleep(100 * time.Millisecond)

		// Check if more data is available
		var buf [1]byte
		_, err = file.Read(buf[:])
		if err != nil {
			if err == io.EOF {
				continue
			}
			return err
		}
		// We read a byte, write it and continue copying
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
}
