package switchback

// Enumerable is the interface implemented by types that can only be represented
// by enumerable, constant values.
//
// The schema package's "enum" validation rule accepts any field whose type
// implements Enumerable and whose current value passes Valid.
type Enumerable interface {
	String() string
	Valid() error
}
