package xrd

import "fmt"

// Warning describes a recoverable defect in the input (an empty scan, an
// offset naming a sample that isn't present). Functions in this package
// never log; they hand warnings back so the caller decides how to report
// them.
type Warning string

func warningf(format string, args ...interface{}) Warning {
	return Warning(fmt.Sprintf(format, args...))
}
