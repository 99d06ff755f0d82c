package models

// Rail is the payment network family a narration follows. NEFT and RTGS
// share one extraction grammar; IMPS, MMT and INFT narrations carry the
// sender name positionally and share another.
type Rail string

const (
	RailUPI     Rail = "UPI"
	RailNEFT    Rail = "NEFT"
	RailRTGS    Rail = "RTGS"
	RailIMPS    Rail = "IMPS"
	RailINFT    Rail = "INFT"
	RailUnknown Rail = "UNKNOWN"
)
