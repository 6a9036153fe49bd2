package extractor

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// EncodingError means the audio recording could not be read.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode audio: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encode reads the whole recording and returns it as standard base64.
func Encode(r io.Reader) (string, error) {
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return "", &EncodingError{Err: err}
	}
	if err := enc.Close(); err != nil {
		return "", &EncodingError{Err: err}
	}
	if sb.Len() == 0 {
		return "", &EncodingError{Err: io.ErrUnexpectedEOF}
	}
	return sb.String(), nil
}
