package ws281x

import "fmt"

// Result is a driver status code. The non-success values implement error and
// keep the numbering of the original ws281x interface.
type Result int

const (
	Success        Result = 0
	ErrGeneric     Result = -1
	ErrOutOfMemory Result = -2
	ErrIllegalGPIO Result = -11
	ErrPCMSetup    Result = -12
	ErrSPISetup    Result = -13
	ErrSPITransfer Result = -14
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case ErrGeneric:
		return "Generic failure"
	case ErrOutOfMemory:
		return "Out of memory"
	case ErrIllegalGPIO:
		return "Selected GPIO not possible"
	case ErrPCMSetup:
		return "Unable to initialize PCM"
	case ErrSPISetup:
		return "Unable to initialize SPI"
	case ErrSPITransfer:
		return "SPI transfer error"
	}
	return fmt.Sprintf("Unknown result (%d)", int(r))
}

func (r Result) Error() string {
	return r.String()
}
