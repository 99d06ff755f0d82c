package models

// TokenClass labels a narration token by shape and content.
type TokenClass string

const (
	ClassHandle TokenClass = "HANDLE"
	ClassPhone  TokenClass = "PHONE"
	ClassHash   TokenClass = "HASH"
	ClassBank   TokenClass = "BANK"
	ClassSystem TokenClass = "SYSTEM"
	ClassIDLike TokenClass = "ID_LIKE"
	ClassText   TokenClass = "TEXT"
)

// Token is a delimiter-separated segment of a normalized description
// together with its classification.
type Token struct {
	Text  string
	Class TokenClass
}
