package invalid

// Status is not a struct.
//
//dtomap:register
type Status string

// Pair is generic.
//
//dtomap:register
type Pair[T any] struct {
	Left  T `dto:"left"`
	Right T `dto:"right"`
}

// Clash declares one key twice.
//
//dtomap:register
type Clash struct {
	A string `dto:"k"`
	B string `json:"k"`
}
