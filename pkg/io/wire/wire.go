// Package wire implements the line-oriented format used to move configuration
// datasets between the dump shim and configdiff.
//
// The stream starts with a header line
//
//	{"format":"configdiff","version":1}
//
// followed by one JSON array per configuration value:
//
//	["default_0","web/secure/base_url","https://shop.test/"]
//
// Blank lines are ignored before the header. After it every line must hold a
// record: the dump snippet never emits an empty line, so one means a value was
// lost on the way.
package wire

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scandiweb/configdiff/pkg/dataset"
)

const (
	// FormatName identifies the stream in the header line.
	FormatName = "configdiff"
	// Version is the current wire format version.
	Version = 1

	recordFields  = 3
	maxLineBytes  = 16 * 1024 * 1024
	initialBuffer = 64 * 1024
	snippetLength = 80

	filePermissions = 0o600
	dirPermissions  = 0o750
)

var (
	// ErrDecode is wrapped by every decoding failure.
	ErrDecode = errors.New("invalid configdiff stream")
	// ErrEmptyPath is returned when WriteFile is given no path.
	ErrEmptyPath = errors.New("stream path cannot be empty")
)

// Header is the first line of a stream.
type Header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// Decode reads a stream and builds the dataset it describes.
func Decode(reader io.Reader) (*dataset.Dataset, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, initialBuffer), maxLineBytes)

	builder := dataset.NewBuilder()
	headerSeen := false
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := bytes.TrimSpace(scanner.Bytes())

		if !headerSeen {
			if len(line) == 0 {
				continue
			}

			err := decodeHeader(line)
			if err != nil {
				return nil, err
			}

			headerSeen = true

			continue
		}

		if len(line) == 0 {
			return nil, fmt.Errorf("%w: empty record on line %d", ErrDecode, lineNumber)
		}

		var record []string

		err := json.Unmarshal(line, &record)
		if err != nil || len(record) != recordFields {
			return nil, fmt.Errorf("%w: malformed record on line %d: %q", ErrDecode, lineNumber, snippet(line))
		}

		builder.Set(record[0], record[1], record[2])
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("%w: read stream: %w", ErrDecode, err)
	}

	if !headerSeen {
		return nil, fmt.Errorf("%w: missing header", ErrDecode)
	}

	return builder.Build(), nil
}

func decodeHeader(line []byte) error {
	var header Header

	err := json.Unmarshal(line, &header)
	if err != nil || header.Format != FormatName {
		return fmt.Errorf("%w: unexpected header %q", ErrDecode, snippet(line))
	}

	if header.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrDecode, header.Version)
	}

	return nil
}

// Encode writes data as a stream.
func Encode(writer io.Writer, data *dataset.Dataset) error {
	buffered := bufio.NewWriter(writer)
	encoder := json.NewEncoder(buffered)
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(Header{Format: FormatName, Version: Version})
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, scope := range data.Scopes() {
		for _, entry := range scope.Entries() {
			err = encoder.Encode([]string{scope.Scope.Key, entry.Path, entry.Value})
			if err != nil {
				return fmt.Errorf("encode %s %s: %w", scope.Scope.Key, entry.Path, err)
			}
		}
	}

	err = buffered.Flush()
	if err != nil {
		return fmt.Errorf("flush stream: %w", err)
	}

	return nil
}

// WriteFile encodes data to path, creating parent directories when needed.
func WriteFile(path string, data *dataset.Dataset) error {
	if path == "" {
		return ErrEmptyPath
	}

	var buf bytes.Buffer

	err := Encode(&buf, data)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), dirPermissions)
	if err != nil {
		return fmt.Errorf("create stream directory: %w", err)
	}

	err = os.WriteFile(path, buf.Bytes(), filePermissions)
	if err != nil {
		return fmt.Errorf("write stream %s: %w", path, err)
	}

	return nil
}

func snippet(line []byte) string {
	if len(line) <= snippetLength {
		return string(line)
	}

	return string(line[:snippetLength]) + "..."
}
