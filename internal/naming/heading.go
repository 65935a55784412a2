package naming

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	byteOrderMark  = "\uFEFF"
	lineFeed       = '\n'
	carriageReturn = '\r'
)

var firstLevelHeadingPattern = regexp.MustCompile(`^#\s+(.+)$`)

// ExtractFirstHeading returns the text of the first "# " heading in the file.
// Lines end at "\n", "\r\n" or a lone "\r" and have no length limit.
// Any failure to open or read the file, including text that is not valid UTF-8, yields an empty string.
//
// #nosec G304
func ExtractFirstHeading(filePath string) string {
	fileHandle, openFileError := os.Open(filePath)
	if openFileError != nil {
		return ""
	}
	defer fileHandle.Close()

	reader := bufio.NewReader(fileHandle)
	var lineBuffer bytes.Buffer
	isFirstLine := true
	for {
		lineBytes, readLineError := readLine(reader, &lineBuffer)
		if readLineError != nil {
			return ""
		}
		if !utf8.Valid(lineBytes) {
			return ""
		}
		line := string(lineBytes)
		if isFirstLine {
			line = strings.TrimPrefix(line, byteOrderMark)
			isFirstLine = false
		}
		if matches := firstLevelHeadingPattern.FindStringSubmatch(strings.TrimSpace(line)); matches != nil {
			return matches[1]
		}
	}
}

// readLine returns the next line without its terminator, reusing lineBuffer.
// io.EOF is returned only once no bytes remain.
func readLine(reader *bufio.Reader, lineBuffer *bytes.Buffer) ([]byte, error) {
	lineBuffer.Reset()
	for {
		currentByte, readByteError := reader.ReadByte()
		if readByteError != nil {
			if errors.Is(readByteError, io.EOF) && lineBuffer.Len() > 0 {
				return lineBuffer.Bytes(), nil
			}
			return nil, readByteError
		}
		switch currentByte {
		case lineFeed:
			return lineBuffer.Bytes(), nil
		case carriageReturn:
			if nextByte, peekError := reader.Peek(1); peekError == nil && nextByte[0] == lineFeed {
				_, _ = reader.ReadByte()
			}
			return lineBuffer.Bytes(), nil
		default:
			lineBuffer.WriteByte(currentByte)
		}
	}
}
