package domain

// Platform enumerates supported streaming platforms.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
)

// DonationTier binds a fixed USD amount to the popup shown on stream when a
// donation for exactly that amount arrives.
type DonationTier struct {
	AmountUSD    float64
	PopupMessage string
	DurationMS   int
}

// DefaultTierDurationMS is used when a tier is registered without an explicit
// display duration.
const DefaultTierDurationMS = 3000

// Streamer represents a content creator profile receiving donations. Profiles
// are immutable after creation.
type Streamer struct {
	ID              string
	Name            string
	WalletAddress   string
	Platforms       []Platform
	AvatarURL       string
	DonationTiers   []DonationTier
	ThankYouMessage string
}
