package reqbody

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Fields of an Enumerable type are checked by the "enum" validation rule when binding requests.
type Enumerable interface {
	String() string
	Valid() error
}
