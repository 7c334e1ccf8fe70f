package core

type (
	// Logger is any service that can record application events.
	// args may contain errors, map[string]interface{} extras and at most one Person.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Person identifies the user on whose behalf an event was logged.
	Person struct {
		ID       string
		Username string
		Email    string
	}
)
