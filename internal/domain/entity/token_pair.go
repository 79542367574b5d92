package entity

// TokenPair is a freshly signed access/refresh token couple. The refresh
// token is single-use: exchanging it rotates its ledger entry.
type TokenPair struct {
	Access  string
	Refresh string
}
