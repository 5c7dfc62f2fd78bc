package utils

import (
	"bytes"
	"errors"
	"strings"
)

func Must[T any](obj T, err error) T {
	if err != nil {
		panic(err)
	}
	return obj
}

// CombineErrors combines errors into a single error with a multiline message.
func CombineErrors(errs ...error) error {
	finalErrBuff := bytes.NewBuffer(nil)

	empty := true
	for _, err := range errs {
		if err != nil {
			finalErrBuff.WriteString(err.Error())
			finalErrBuff.WriteRune('\n')
			empty = false
		}
	}

	if empty {
		return nil
	}
	return errors.New(strings.TrimRight(finalErrBuff.String(), "\n"))
}
