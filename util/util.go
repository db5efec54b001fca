package util

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"
)

// LoadOptionsFile decodes the JSON file at optionsFilePath into options.
func LoadOptionsFile(optionsFilePath string, options interface{}) error {
	content, err := os.ReadFile(optionsFilePath)
	if err != nil {
		return err
	}
	if err = sonnet.Unmarshal(content, options); err != nil {
		return fmt.Errorf("decode options file %s: %w", optionsFilePath, err)
	}
	return nil
}

func AssertErrIsNil(err error) {
	if err != nil {
		panic(err)
	}
}

func AssertTrue(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
