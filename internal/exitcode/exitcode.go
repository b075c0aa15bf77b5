package exitcode

const (
	Success          = 0
	UsageError       = 1
	ValidationError  = 2
	InvalidSelection = 3
	DataFileMissing  = 4
	DBConnError      = 5
	ImportError      = 6
	DataError        = 7
)
