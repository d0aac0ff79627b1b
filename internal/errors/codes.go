package errors

// Error codes for the Pecan front end.
// These codes are used in diagnostics, the CLI and the language server
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0100-E0199: Parser errors
// E0900-E0999: Tooling errors

const (
	// E0100: The next token is not the one the grammar requires
	ErrorUnexpectedToken = "E0100"

	// E0101: The input ended in the middle of a construct
	ErrorUnexpectedEOF = "E0101"

	// E0102: A literal could not be scanned
	ErrorMalformedLiteral = "E0102"

	// E0900: Source could not be read
	ErrorSourceUnreadable = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedToken:
		return "Found a token the grammar does not allow here"
	case ErrorUnexpectedEOF:
		return "Source ended before the construct was complete"
	case ErrorMalformedLiteral:
		return "Numeric, string or character literal is malformed"
	case ErrorSourceUnreadable:
		return "Source file could not be read"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
