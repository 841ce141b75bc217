package curly

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// logFile persists the wire-level record of a single request: the verbose
// transport diagnostics, the request body that was sent and the response
// body, one file per request.
type logFile struct {
	dir         string
	id          uuid.UUID
	requestBody string
}

func newLogFile(dir, requestBody string) *logFile {
	return &logFile{
		dir:         dir,
		id:          uuid.New(),
		requestBody: requestBody,
	}
}

// flush writes the log file and returns the number of bytes written. The
// directory is created recursively on demand; failure to create or write it
// is a LoggingError.
func (l *logFile) flush(diagnostics, responseBody []byte) (int, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		if info, statErr := os.Stat(l.dir); statErr != nil || !info.IsDir() {
			return 0, &LoggingError{Dir: l.dir, Err: err}
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "request %s\n", l.id)
	buf.WriteString("===== VERBOSE =====\n")
	buf.Write(diagnostics)
	buf.WriteString("===== REQUEST BODY =====\n")
	buf.WriteString(l.requestBody)
	buf.WriteString("\n===== RESPONSE BODY =====\n")
	buf.Write(responseBody)
	buf.WriteString("\n")

	path := filepath.Join(l.dir, logFileName(time.Now()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, &LoggingError{Dir: l.dir, Err: err}
	}
	return buf.Len(), nil
}

// logFileName yields cURLy_<unix-seconds>_<microsecond-fraction>.txt so
// rapid successive requests in one process get distinct files.
func logFileName(now time.Time) string {
	return fmt.Sprintf("cURLy_%d_%06d.txt", now.Unix(), now.Nanosecond()/1000)
}
