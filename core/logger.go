package core

// Logger reports messages to the console and, outside debug, to the error tracker.
// args may carry errors, extra data maps and the acting Student.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Student identifies the owner of a grade record in log reports.
type Student struct {
	ID    string
	Email string
}
