package domain

// Donation is a recorded contribution event. The amount must match one of the
// referenced streamer's tier amounts; records are written once and never
// mutated.
type Donation struct {
	ID           string
	StreamerID   string
	AmountUSD    float64
	DonorAddress string
	Message      string
	ClipURL      string
	TxHash       string
	Timestamp    int64 // unix seconds
}

// DonationStats aggregates all donations recorded for a single streamer.
type DonationStats struct {
	TotalAmountUSD float64
	DonationCount  int
	UniqueDonors   int
}
